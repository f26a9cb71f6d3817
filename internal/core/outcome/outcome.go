// Package outcome contains the pure calculations behind hacking
// operations: success rates, loot, cost/damage tables, attack detection,
// and level progression. Nothing here performs I/O; randomness comes from
// an injected source so results are reproducible in tests.
package outcome

// Rand is the randomness source used by loot generation and target
// synthesis. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Profile is the subset of a user's stats that outcome calculations read.
type Profile struct {
	Level      int
	Experience int64
}

// DefenseProfile is the subset of defense settings that the detection
// calculation reads.
type DefenseProfile struct {
	FirewallLevel int
	IDSLevel      int
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
