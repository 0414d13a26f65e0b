package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Defaults for the per-span collection caps.
const (
	DefaultMaxNumberOfAttributes = 32
	DefaultMaxNumberOfEvents     = 128
	DefaultMaxNumberOfLinks      = 32
)

// viper keys, resolved as SEETRACE_MAX_ATTRIBUTES etc.
const (
	KeyMaxAttributes = "max-attributes"
	KeyMaxEvents     = "max-events"
	KeyMaxLinks      = "max-links"
)

// for root
var (
	Debug = false
)

// TraceConfig is an immutable snapshot of the knobs a span is built
// under. Builders capture one snapshot, so a live update never splits a
// single span across two configs.
type TraceConfig struct {
	Sampler               Sampler
	MaxNumberOfAttributes int
	MaxNumberOfEvents     int
	MaxNumberOfLinks      int
}

// Default returns the stock config: parent-based sampling that always
// samples at the root, caps 32/128/32.
func Default() TraceConfig {
	return TraceConfig{
		Sampler:               ParentBased(AlwaysSample()),
		MaxNumberOfAttributes: DefaultMaxNumberOfAttributes,
		MaxNumberOfEvents:     DefaultMaxNumberOfEvents,
		MaxNumberOfLinks:      DefaultMaxNumberOfLinks,
	}
}

// FromViper reads the collection caps from vp, falling back to the
// defaults for anything unset or non-positive.
func FromViper(vp *viper.Viper) TraceConfig {
	cfg := Default()
	cfg.MaxNumberOfAttributes = positiveOr(vp.GetInt(KeyMaxAttributes), DefaultMaxNumberOfAttributes, KeyMaxAttributes)
	cfg.MaxNumberOfEvents = positiveOr(vp.GetInt(KeyMaxEvents), DefaultMaxNumberOfEvents, KeyMaxEvents)
	cfg.MaxNumberOfLinks = positiveOr(vp.GetInt(KeyMaxLinks), DefaultMaxNumberOfLinks, KeyMaxLinks)
	return cfg
}

func positiveOr(v int, fallback int, key string) int {
	if v > 0 {
		return v
	}
	if v < 0 {
		logrus.Warnf("SeeTrace couldn't accept %s=%d, using default %d", key, v, fallback)
	}
	return fallback
}
