package models

import "time"

// OperationType identifies the kind of hacking operation being run.
// The type determines cost, base success rate, damage, loot table, and
// experience/reputation yield.
type OperationType string

// Operation type constants
const (
	OperationTypeDDOS              OperationType = "DDOS"
	OperationTypeSQLInjection      OperationType = "SQL_INJECTION"
	OperationTypeRansomware        OperationType = "RANSOMWARE"
	OperationTypeBruteForce        OperationType = "BRUTE_FORCE"
	OperationTypeSocialEngineering OperationType = "SOCIAL_ENGINEERING"
	OperationTypePortScan          OperationType = "PORT_SCAN"
	OperationTypeMining            OperationType = "MINING"
	OperationTypeDataTheft         OperationType = "DATA_THEFT"
	OperationTypeZeroDay           OperationType = "ZERO_DAY"
)

// KnownOperationTypes lists every recognized operation type.
var KnownOperationTypes = []OperationType{
	OperationTypeDDOS,
	OperationTypeSQLInjection,
	OperationTypeRansomware,
	OperationTypeBruteForce,
	OperationTypeSocialEngineering,
	OperationTypePortScan,
	OperationTypeMining,
	OperationTypeDataTheft,
	OperationTypeZeroDay,
}

// ValidOperationType reports whether t is a recognized operation type.
func ValidOperationType(t OperationType) bool {
	for _, known := range KnownOperationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// OperationStatus tracks an operation through its lifecycle.
// Transitions only move pending -> in_progress -> {completed, failed,
// cancelled}; terminal states are permanent.
type OperationStatus string

// Operation status constants
const (
	OperationStatusPending    OperationStatus = "pending"
	OperationStatusInProgress OperationStatus = "in_progress"
	OperationStatusCompleted  OperationStatus = "completed"
	OperationStatusFailed     OperationStatus = "failed"
	OperationStatusCancelled  OperationStatus = "cancelled"
)

// Terminal reports whether the status is one of the three terminal states.
func (s OperationStatus) Terminal() bool {
	return s == OperationStatusCompleted || s == OperationStatusFailed || s == OperationStatusCancelled
}

// TargetKind identifies what an operation is aimed at.
type TargetKind string

// Target kind constants
const (
	TargetKindPlayer  TargetKind = "player"
	TargetKindNPC     TargetKind = "npc"
	TargetKindAddress TargetKind = "address"
)

// Operation is a single timed hacking attempt with a lifecycle from
// admission to terminal outcome.
type Operation struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Type        OperationType    `json:"type"`
	TargetID    string           `json:"targetId"`
	TargetKind  TargetKind       `json:"targetKind"`
	Status      OperationStatus  `json:"status"`
	Progress    float64          `json:"progress"`
	Result      *OperationResult `json:"result,omitempty"`
	StartedAt   time.Time        `json:"startedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// OperationResult is the outcome payload written exactly once when an
// operation reaches a terminal state.
type OperationResult struct {
	Success   bool   `json:"success"`
	Loot      *Loot  `json:"loot,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
	Refund    int64  `json:"refund,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Loot is the reward bundle from a successful operation.
type Loot struct {
	Bitcoins int64          `json:"bitcoins"`
	Items    []LootItem     `json:"items,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// LootItem is a discrete item obtained as loot.
type LootItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value int64  `json:"value"`
}
