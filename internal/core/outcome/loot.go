package outcome

import "github.com/Nolimiter/nOHACK/internal/models"

// Loot rolls the reward bundle for a successful operation. Ranges and
// auxiliary fields vary per type; draws come from rng so a seeded source
// yields reproducible loot.
func Loot(t models.OperationType, rng Rand) *models.Loot {
	loot := &models.Loot{}

	switch t {
	case models.OperationTypeDDOS:
		// Disruption pays little by itself.
		loot.Bitcoins = int64(rng.Intn(10)) + 5
	case models.OperationTypeSQLInjection:
		loot.Bitcoins = int64(rng.Intn(100)) + 50
		loot.Data = map[string]any{
			"credentials":  rng.Float64() > 0.5,
			"personalInfo": rng.Float64() > 0.3,
		}
	case models.OperationTypeRansomware:
		loot.Bitcoins = int64(rng.Intn(500)) + 200
	case models.OperationTypeBruteForce:
		loot.Bitcoins = int64(rng.Intn(75)) + 25
		if rng.Float64() > 0.7 {
			loot.Items = []models.LootItem{
				{ID: "password-db", Name: "Password Database", Value: 100},
			}
		}
	case models.OperationTypeDataTheft:
		loot.Bitcoins = int64(rng.Intn(200)) + 100
		loot.Data = map[string]any{
			"sensitiveData": rng.Float64() > 0.6,
			"financialInfo": rng.Float64() > 0.4,
		}
	case models.OperationTypePortScan:
		// Scans yield intel, not coins.
		loot.Data = map[string]any{
			"openPorts": []int{22, 80, 443},
			"services":  []string{"SSH", "HTTP", "HTTPS"},
		}
	case models.OperationTypeZeroDay:
		loot.Bitcoins = int64(rng.Intn(1000)) + 500
		loot.Data = map[string]any{
			"zeroDayExploit": true,
			"systemAccess":   rng.Float64() > 0.8,
			"sensitiveFiles": rng.Intn(5) + 1,
		}
	default:
		loot.Bitcoins = int64(rng.Intn(50)) + 10
	}

	return loot
}
