package employee

// Tier is the performance bucket derived from a rating.
type Tier string

// Tier labels, best first.
const (
	TierElite   Tier = "Elite"
	TierStrong  Tier = "Strong"
	TierAverage Tier = "Average"
	TierLow     Tier = "Low"
)

// Rating thresholds; a rating equal to a threshold belongs to the higher tier.
const (
	EliteThreshold   = 4.5
	StrongThreshold  = 4.0
	AverageThreshold = 3.5
)

// MaxRating is the top of the rating scale.
const MaxRating = 5.0

// Tiers returns all tiers in fixed order, best first.
func Tiers() []Tier {
	return []Tier{TierElite, TierStrong, TierAverage, TierLow}
}

// TierFor maps a performance rating onto the tier ladder.
func TierFor(rating float64) Tier {
	switch {
	case rating >= EliteThreshold:
		return TierElite
	case rating >= StrongThreshold:
		return TierStrong
	case rating >= AverageThreshold:
		return TierAverage
	default:
		return TierLow
	}
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierElite, TierStrong, TierAverage, TierLow:
		return true
	}
	return false
}
