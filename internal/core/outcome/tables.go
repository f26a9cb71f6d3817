package outcome

import "github.com/Nolimiter/nOHACK/internal/models"

// Default values for unrecognized operation types.
const (
	defaultCost       = 10
	defaultDamage     = 5
	defaultExperience = 10
	defaultReputation = 2
)

var costTable = map[models.OperationType]int64{
	models.OperationTypeDDOS:              50,
	models.OperationTypeSQLInjection:      30,
	models.OperationTypeRansomware:        100,
	models.OperationTypeBruteForce:        20,
	models.OperationTypeSocialEngineering: 25,
	models.OperationTypePortScan:          5,
	models.OperationTypeMining:            0, // mining is free to start
	models.OperationTypeDataTheft:         40,
}

var damageTable = map[models.OperationType]int{
	models.OperationTypeDDOS:              10,
	models.OperationTypeSQLInjection:      15,
	models.OperationTypeRansomware:        25,
	models.OperationTypeBruteForce:        5,
	models.OperationTypeSocialEngineering: 12,
	models.OperationTypePortScan:          1,
	models.OperationTypeMining:            0,
	models.OperationTypeDataTheft:         20,
}

var experienceTable = map[models.OperationType]int64{
	models.OperationTypeDDOS:              10,
	models.OperationTypeSQLInjection:      25,
	models.OperationTypeRansomware:        50,
	models.OperationTypeBruteForce:        15,
	models.OperationTypeSocialEngineering: 30,
	models.OperationTypePortScan:          5,
	models.OperationTypeMining:            20,
	models.OperationTypeDataTheft:         40,
	models.OperationTypeZeroDay:           100,
}

var reputationTable = map[models.OperationType]int64{
	models.OperationTypeDDOS:              2,
	models.OperationTypeSQLInjection:      5,
	models.OperationTypeRansomware:        8,
	models.OperationTypeBruteForce:        3,
	models.OperationTypeSocialEngineering: 6,
	models.OperationTypePortScan:          1,
	models.OperationTypeMining:            4,
	models.OperationTypeDataTheft:         7,
	models.OperationTypeZeroDay:           15,
}

// Cost returns the upfront bitcoin cost of starting an operation.
func Cost(t models.OperationType) int64 {
	if cost, ok := costTable[t]; ok {
		return cost
	}
	return defaultCost
}

// Damage returns the damage dealt by a successful operation.
func Damage(t models.OperationType) int {
	if dmg, ok := damageTable[t]; ok {
		return dmg
	}
	return defaultDamage
}

// ExperienceGain returns the experience awarded for a successful operation.
func ExperienceGain(t models.OperationType) int64 {
	if xp, ok := experienceTable[t]; ok {
		return xp
	}
	return defaultExperience
}

// ReputationGain returns the reputation awarded for a successful operation.
func ReputationGain(t models.OperationType) int64 {
	if rep, ok := reputationTable[t]; ok {
		return rep
	}
	return defaultReputation
}
