package outcome

// SyntheticProfile fabricates target stats for raw network-address
// targets. Addresses are never looked up or written back; each operation
// rolls a fresh profile, so repeated attacks on the same address see
// different difficulty each time.
func SyntheticProfile(rng Rand) Profile {
	return Profile{
		Level:      rng.Intn(10) + 1,
		Experience: int64(rng.Intn(5000)),
	}
}
