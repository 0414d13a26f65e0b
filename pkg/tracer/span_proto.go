package tracer

import (
	"strings"

	resourcepb "github.com/census-instrumentation/opencensus-proto/gen-go/resource/v1"
	tracepb "github.com/census-instrumentation/opencensus-proto/gen-go/trace/v1"
	attr "go.opentelemetry.io/otel/attribute"

	"github.com/stleox/seetrace/pkg/clock"
	"github.com/stleox/seetrace/pkg/trace"
)

// Wire mapping onto the trace/v1 schema. Absent and empty collections
// both serialize as an omitted message.

func toProtoKind(kind trace.SpanKind) tracepb.Span_SpanKind {
	// The schema only distinguishes server and client; the remaining
	// kinds serialize as unspecified.
	switch kind {
	case trace.SpanKindServer:
		return tracepb.Span_SERVER
	case trace.SpanKindClient:
		return tracepb.Span_CLIENT
	default:
		return tracepb.Span_SPAN_KIND_UNSPECIFIED
	}
}

func toProtoTracestate(ts trace.TraceState) *tracepb.Span_Tracestate {
	if ts.Len() == 0 {
		return nil
	}
	members := strings.Split(ts.String(), ",")
	entries := make([]*tracepb.Span_Tracestate_Entry, 0, len(members))
	for _, member := range members {
		key, value, found := strings.Cut(member, "=")
		if !found {
			continue
		}
		entries = append(entries, &tracepb.Span_Tracestate_Entry{Key: key, Value: value})
	}
	return &tracepb.Span_Tracestate{Entries: entries}
}

func toProtoAttributeValue(value attr.Value) *tracepb.AttributeValue {
	switch value.Type() {
	case attr.STRING:
		return &tracepb.AttributeValue{Value: &tracepb.AttributeValue_StringValue{
			StringValue: &tracepb.TruncatableString{Value: value.AsString()},
		}}
	case attr.INT64:
		return &tracepb.AttributeValue{Value: &tracepb.AttributeValue_IntValue{
			IntValue: value.AsInt64(),
		}}
	case attr.FLOAT64:
		return &tracepb.AttributeValue{Value: &tracepb.AttributeValue_DoubleValue{
			DoubleValue: value.AsFloat64(),
		}}
	case attr.BOOL:
		return &tracepb.AttributeValue{Value: &tracepb.AttributeValue_BoolValue{
			BoolValue: value.AsBool(),
		}}
	default:
		return nil
	}
}

func toProtoAttributes(attributes []attr.KeyValue, dropped uint32) *tracepb.Span_Attributes {
	attributeMap := make(map[string]*tracepb.AttributeValue, len(attributes))
	for _, kv := range attributes {
		if v := toProtoAttributeValue(kv.Value); v != nil {
			attributeMap[string(kv.Key)] = v
		}
	}
	return &tracepb.Span_Attributes{
		AttributeMap:           attributeMap,
		DroppedAttributesCount: int32(dropped),
	}
}

func toProtoAttributeMap(attributes map[string]attr.Value) *tracepb.Span_Attributes {
	if len(attributes) == 0 {
		return nil
	}
	attributeMap := make(map[string]*tracepb.AttributeValue, len(attributes))
	for k, v := range attributes {
		if pv := toProtoAttributeValue(v); pv != nil {
			attributeMap[k] = pv
		}
	}
	return &tracepb.Span_Attributes{AttributeMap: attributeMap}
}

func toProtoTimeEvents(events []timedEvent, dropped uint32, converter *clock.TimestampConverter) *tracepb.Span_TimeEvents {
	out := make([]*tracepb.Span_TimeEvent, 0, len(events))
	for _, te := range events {
		out = append(out, toProtoTimeEvent(te, converter))
	}
	return &tracepb.Span_TimeEvents{
		TimeEvent:               out,
		DroppedAnnotationsCount: int32(dropped),
	}
}

func toProtoTimeEvent(te timedEvent, converter *clock.TimestampConverter) *tracepb.Span_TimeEvent {
	return &tracepb.Span_TimeEvent{
		Time: converter.Convert(te.nanos),
		Value: &tracepb.Span_TimeEvent_Annotation_{
			Annotation: &tracepb.Span_TimeEvent_Annotation{
				Description: &tracepb.TruncatableString{Value: te.event.Name},
				Attributes:  toProtoAttributeMap(te.event.Attributes),
			},
		},
	}
}

func toProtoLinks(links []trace.Link, dropped uint32) *tracepb.Span_Links {
	out := make([]*tracepb.Span_Link, 0, len(links))
	for _, link := range links {
		out = append(out, toProtoLink(link))
	}
	return &tracepb.Span_Links{
		Link:              out,
		DroppedLinksCount: int32(dropped),
	}
}

func toProtoLink(link trace.Link) *tracepb.Span_Link {
	tid := link.SpanContext.TraceID()
	sid := link.SpanContext.SpanID()
	return &tracepb.Span_Link{
		TraceId:    tid[:],
		SpanId:     sid[:],
		Attributes: toProtoAttributeMap(link.Attributes),
	}
}

func toProtoStatus(status trace.Status) *tracepb.Status {
	return &tracepb.Status{
		Code:    int32(status.Code),
		Message: status.Message,
	}
}

func toProtoResource(resource *trace.Resource) *resourcepb.Resource {
	if resource == nil || resource.Empty() {
		return nil
	}
	return &resourcepb.Resource{
		Type:   resource.Type(),
		Labels: resource.Labels(),
	}
}
