package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Nolimiter/nOHACK/internal/core/outcome"
	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// UserStore is the in-memory reference implementation of the ledger
// port. A single mutex stands in for the conditional UPDATEs of the
// SQLite adapter; the semantics are identical.
type UserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return secondary.ErrDuplicateUsername
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (s *UserStore) DebitBitcoins(ctx context.Context, userID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return secondary.ErrNotFound
	}
	if u.Bitcoins < amount {
		return secondary.ErrInsufficientFunds
	}
	u.Bitcoins -= amount
	return nil
}

func (s *UserStore) CreditBitcoins(ctx context.Context, userID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return secondary.ErrNotFound
	}
	u.Bitcoins += amount
	return nil
}

func (s *UserStore) ApplyProgress(ctx context.Context, userID string, xpDelta, repDelta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return secondary.ErrNotFound
	}
	u.Experience += xpDelta
	u.Reputation += repDelta
	u.Level, u.Experience = outcome.AdvanceLevel(u.Level, u.Experience)
	return nil
}

// OperationStore is the in-memory reference implementation of the
// operation repository. Terminal records are immutable, matching the
// SQLite adapter's conditional update.
type OperationStore struct {
	mu  sync.Mutex
	ops map[string]*models.Operation
}

// NewOperationStore creates an empty OperationStore.
func NewOperationStore() *OperationStore {
	return &OperationStore{ops: make(map[string]*models.Operation)}
}

func (s *OperationStore) Create(ctx context.Context, op *models.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *op
	s.ops[op.ID] = &clone
	return nil
}

func (s *OperationStore) Update(ctx context.Context, op *models.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.ops[op.ID]
	if !ok {
		return secondary.ErrNotFound
	}
	if existing.Status.Terminal() {
		return nil
	}
	clone := *op
	s.ops[op.ID] = &clone
	return nil
}

func (s *OperationStore) GetByID(ctx context.Context, id string) (*models.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.ops[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	clone := *op
	return &clone, nil
}

func (s *OperationStore) ListByUser(ctx context.Context, userID string) ([]*models.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Operation
	for _, op := range s.ops {
		if op.UserID == userID {
			clone := *op
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// AttackLog is the in-memory reference implementation of the append-only
// attack history.
type AttackLog struct {
	mu      sync.Mutex
	attacks []*models.Attack
}

// NewAttackLog creates an empty AttackLog.
func NewAttackLog() *AttackLog {
	return &AttackLog{}
}

func (s *AttackLog) Create(ctx context.Context, attack *models.Attack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *attack
	s.attacks = append(s.attacks, &clone)
	return nil
}

func (s *AttackLog) ListByAttacker(ctx context.Context, userID string) ([]*models.Attack, error) {
	return s.list(func(a *models.Attack) bool { return a.AttackerID == userID }), nil
}

func (s *AttackLog) ListByDefender(ctx context.Context, userID string) ([]*models.Attack, error) {
	return s.list(func(a *models.Attack) bool { return a.DefenderID == userID }), nil
}

func (s *AttackLog) list(match func(*models.Attack) bool) []*models.Attack {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Attack
	// Appended in time order; walk backwards for newest first.
	for i := len(s.attacks) - 1; i >= 0; i-- {
		if match(s.attacks[i]) {
			clone := *s.attacks[i]
			result = append(result, &clone)
		}
	}
	return result
}

// DefenseStore is the in-memory reference implementation of the defense
// repository.
type DefenseStore struct {
	mu       sync.Mutex
	defenses map[string]*models.Defense
}

// NewDefenseStore creates an empty DefenseStore.
func NewDefenseStore() *DefenseStore {
	return &DefenseStore{defenses: make(map[string]*models.Defense)}
}

func (s *DefenseStore) Get(ctx context.Context, userID string) (*models.Defense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.defenses[userID]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *DefenseStore) Upsert(ctx context.Context, defense *models.Defense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *defense
	s.defenses[defense.UserID] = &clone
	return nil
}

// Ensure the stores implement their interfaces
var (
	_ secondary.UserRepository      = (*UserStore)(nil)
	_ secondary.OperationRepository = (*OperationStore)(nil)
	_ secondary.AttackRepository    = (*AttackLog)(nil)
	_ secondary.DefenseRepository   = (*DefenseStore)(nil)
)
