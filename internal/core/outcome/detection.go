package outcome

import "github.com/Nolimiter/nOHACK/internal/models"

// DetectionProbability computes how likely a defender is to detect an
// incoming attack, as a percentage clamped to [0, 95]. Firewalls are
// weighted against volumetric attacks, IDS against injection; higher-level
// attackers are harder to detect.
func DetectionProbability(defense DefenseProfile, defender, attacker Profile, t models.OperationType) float64 {
	rate := float64(defense.FirewallLevel)*5 + float64(defense.IDSLevel)*7

	switch t {
	case models.OperationTypeDDOS:
		rate += float64(defense.FirewallLevel) * 10
	case models.OperationTypeSQLInjection:
		rate += float64(defense.IDSLevel) * 15
	case models.OperationTypeBruteForce:
		rate += float64(defense.FirewallLevel) * 8
	default:
		rate += float64(defense.IDSLevel) * 5
	}

	rate -= float64(attacker.Level-defender.Level) * 2

	return clamp(rate, 0, 95)
}
