package config

import (
	attr "go.opentelemetry.io/otel/attribute"

	"github.com/stleox/seetrace/pkg/trace"
)

// SamplingParameters is everything a sampler may look at. The decision
// happens before the span exists, so the proposed ids are passed in.
type SamplingParameters struct {
	// HasParent is false for root spans; Parent is meaningful only
	// when it is true.
	HasParent bool
	Parent    trace.SpanContext
	TraceID   trace.TraceID
	SpanID    trace.SpanID
	Name      string
	Links     []trace.Link
}

// Decision carries the verdict plus attributes to merge into the new
// span when it is sampled.
type Decision struct {
	Sampled    bool
	Attributes map[string]attr.Value
}

// Sampler selects which spans are recorded. Implementations must be
// safe for concurrent use and must not block.
type Sampler interface {
	ShouldSample(p SamplingParameters) Decision
	Description() string
}

type alwaysSampler struct{}

func (alwaysSampler) ShouldSample(SamplingParameters) Decision {
	return Decision{Sampled: true}
}

func (alwaysSampler) Description() string { return "AlwaysSample" }

// AlwaysSample records every span.
func AlwaysSample() Sampler {
	return alwaysSampler{}
}

type neverSampler struct{}

func (neverSampler) ShouldSample(SamplingParameters) Decision {
	return Decision{Sampled: false}
}

func (neverSampler) Description() string { return "NeverSample" }

// NeverSample rejects every span.
func NeverSample() Sampler {
	return neverSampler{}
}

type parentBasedSampler struct {
	root Sampler
}

func (s parentBasedSampler) ShouldSample(p SamplingParameters) Decision {
	if p.HasParent && p.Parent.IsValid() {
		return Decision{Sampled: p.Parent.IsSampled()}
	}
	return s.root.ShouldSample(p)
}

func (s parentBasedSampler) Description() string {
	return "ParentBased{" + s.root.Description() + "}"
}

// ParentBased follows the parent's sampling bit and delegates root spans
// to the given sampler.
func ParentBased(root Sampler) Sampler {
	return parentBasedSampler{root: root}
}
