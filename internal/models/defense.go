package models

import "time"

// Defense holds a user's defensive configuration. Firewall and IDS levels
// feed the attack-detection probability calculation.
type Defense struct {
	UserID          string    `json:"userId"`
	FirewallLevel   int       `json:"firewallLevel"`
	IDSLevel        int       `json:"idsLevel"`
	HoneypotActive  bool      `json:"honeypotActive"`
	BackupFrequency string    `json:"backupFrequency"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
