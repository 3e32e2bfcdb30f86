package compare

// Tier is the reliability label attached to every displayed score. A score is
// never shown without its tier: a similarity computed from a handful of
// markers is statistically weak no matter how high it is.
type Tier string

const (
	TierHigh         Tier = "high"
	TierMedium       Tier = "medium"
	TierLow          Tier = "low"
	TierInsufficient Tier = "insufficient"
)

// Thresholds holds the shared-marker counts that separate the confidence
// tiers. The defaults were tuned against a small catalog, so they are
// configuration rather than constants.
type Thresholds struct {
	High   int `yaml:"high" json:"high"`
	Medium int `yaml:"medium" json:"medium"`
	Low    int `yaml:"low" json:"low"`
}

// DefaultThresholds returns the standard 30/20/10 tiering.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 30, Medium: 20, Low: 10}
}

// withDefaults fills unset or nonsensical values from the defaults.
func (t Thresholds) withDefaults() Thresholds {
	def := DefaultThresholds()
	if t.High <= 0 {
		t.High = def.High
	}
	if t.Medium <= 0 {
		t.Medium = def.Medium
	}
	if t.Low <= 0 {
		t.Low = def.Low
	}
	return t
}

// Classify maps a shared-marker count to a confidence tier. Descending
// thresholds, first match wins.
func (t Thresholds) Classify(sharedMarkers int) Tier {
	t = t.withDefaults()
	switch {
	case sharedMarkers >= t.High:
		return TierHigh
	case sharedMarkers >= t.Medium:
		return TierMedium
	case sharedMarkers >= t.Low:
		return TierLow
	default:
		return TierInsufficient
	}
}
