package config

import (
	"testing"

	r "github.com/stretchr/testify/require"

	"github.com/stleox/seetrace/pkg/trace"
)

func mockSpanContext(sampled bool) trace.SpanContext {
	var flags trace.TraceFlags
	if sampled {
		flags = trace.FlagsSampled
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: flags,
	})
}

func TestAlwaysSample(t *testing.T) {
	d := AlwaysSample().ShouldSample(SamplingParameters{Name: "s"})
	r.True(t, d.Sampled)
}

func TestNeverSample(t *testing.T) {
	d := NeverSample().ShouldSample(SamplingParameters{Name: "s"})
	r.False(t, d.Sampled)
}

func TestParentBased(t *testing.T) {
	s := ParentBased(AlwaysSample())

	tests := []struct {
		name string
		p    SamplingParameters
		want bool
	}{
		{
			"root delegates",
			SamplingParameters{Name: "root"},
			true,
		},
		{
			"sampled parent",
			SamplingParameters{HasParent: true, Parent: mockSpanContext(true)},
			true,
		},
		{
			"unsampled parent",
			SamplingParameters{HasParent: true, Parent: mockSpanContext(false)},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ShouldSample(tt.p).Sampled; got != tt.want {
				t.Errorf("ShouldSample() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParentBased_NeverAtRoot(t *testing.T) {
	s := ParentBased(NeverSample())
	r.False(t, s.ShouldSample(SamplingParameters{Name: "root"}).Sampled)
	r.True(t, s.ShouldSample(SamplingParameters{HasParent: true, Parent: mockSpanContext(true)}).Sampled)
}
