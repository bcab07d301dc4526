// Package trust maps an Ethos reputation score to trading privileges.
// All functions are pure; callers re-derive on every read instead of
// caching tier fields next to the score.
package trust

// Tier is a privilege band derived from a reputation score.
type Tier struct {
	Key                string
	Label              string
	MinScore           int
	MaxScore           int // inclusive; MaxScore < 0 means unbounded
	MaxTradeAmount     float64
	MaxConcurrentDeals int
}

// The five tiers are contiguous, closed ranges covering [0, inf).
var tiers = []Tier{
	{Key: "UNTRUSTED", Label: "Untrusted", MinScore: 0, MaxScore: 1399, MaxTradeAmount: 0, MaxConcurrentDeals: 0},
	{Key: "BASIC", Label: "Basic Trust", MinScore: 1400, MaxScore: 1599, MaxTradeAmount: 500, MaxConcurrentDeals: 1},
	{Key: "TRUSTED", Label: "Trusted", MinScore: 1600, MaxScore: 1799, MaxTradeAmount: 1000, MaxConcurrentDeals: 3},
	{Key: "VERIFIED", Label: "Verified", MinScore: 1800, MaxScore: 1999, MaxTradeAmount: 5000, MaxConcurrentDeals: 5},
	{Key: "ELITE", Label: "Elite", MinScore: 2000, MaxScore: -1, MaxTradeAmount: 25000, MaxConcurrentDeals: 10},
}

// MinTradingScore is the lowest score with any trading privileges.
const MinTradingScore = 1400

// ResolveTier returns the tier for a score. Every non-negative score maps to
// exactly one tier; anything that falls through (negative input) lands on
// UNTRUSTED.
func ResolveTier(score int) Tier {
	for _, t := range tiers {
		if score >= t.MinScore && (t.MaxScore < 0 || score <= t.MaxScore) {
			return t
		}
	}
	return tiers[0]
}

// MaxConcurrentDeals returns the concurrent-deal ceiling for a score. The
// step function is monotonically non-decreasing in the score.
func MaxConcurrentDeals(score int) int {
	return ResolveTier(score).MaxConcurrentDeals
}

// Tiers returns the full tier table, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
