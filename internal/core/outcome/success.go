package outcome

import "github.com/Nolimiter/nOHACK/internal/models"

var baseRateTable = map[models.OperationType]float64{
	models.OperationTypeDDOS:              70,
	models.OperationTypeSQLInjection:      60,
	models.OperationTypeRansomware:        40,
	models.OperationTypeBruteForce:        50,
	models.OperationTypeSocialEngineering: 55,
	models.OperationTypePortScan:          90,
	models.OperationTypeDataTheft:         45,
	models.OperationTypeZeroDay:           80, // unknown exploit, very likely to land
}

const defaultBaseRate = 50

// BaseSuccessRate returns the per-type base success percentage.
func BaseSuccessRate(t models.OperationType) float64 {
	if rate, ok := baseRateTable[t]; ok {
		return rate
	}
	return defaultBaseRate
}

// SuccessRate computes the success percentage for an attacker hitting a
// target with the given operation type. Attacker skill is 2*level +
// experience/1000; target defense is 1.5*level. The result is clamped to
// [10, 90] so no operation is ever a sure thing in either direction.
func SuccessRate(attacker, target Profile, t models.OperationType) float64 {
	skill := float64(attacker.Level)*2 + float64(attacker.Experience)/1000
	defense := float64(target.Level) * 1.5

	rate := BaseSuccessRate(t) + skill*0.5 - defense*0.3
	return clamp(rate, 10, 90)
}
