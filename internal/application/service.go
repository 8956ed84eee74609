package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

// PantryService is the entry point for every caller of the data layer. It
// validates input before the store sees it, logs store failures and keeps a
// failed initialization sticky so later calls report it instead of touching
// an unusable store.
type PantryService struct {
	store        domain.Store
	clock        inventory.Clock
	logger       *slog.Logger
	horizonDays  int
	lowThreshold int

	mu      sync.RWMutex
	initErr error
}

type Option func(*PantryService)

func WithClock(clock inventory.Clock) Option {
	return func(s *PantryService) { s.clock = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *PantryService) { s.logger = logger }
}

func WithHorizonDays(days int) Option {
	return func(s *PantryService) { s.horizonDays = days }
}

func WithLowThreshold(threshold int) Option {
	return func(s *PantryService) { s.lowThreshold = threshold }
}

func NewPantryService(store domain.Store, opts ...Option) *PantryService {
	s := &PantryService{
		store:        store,
		clock:        inventory.SystemClock{},
		logger:       slog.Default(),
		horizonDays:  inventory.DefaultHorizonDays,
		lowThreshold: inventory.DefaultLowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize prepares the schema and seed rows. A failure is logged and
// remembered; until a later Initialize succeeds every other call returns it.
func (s *PantryService) Initialize(ctx context.Context) error {
	err := s.store.Initialize(ctx)

	s.mu.Lock()
	s.initErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.ErrorContext(ctx, "store initialization failed", "error", err)
		if !errors.Is(err, domain.ErrInitialization) {
			err = fmt.Errorf("%w: %w", domain.ErrInitialization, err)
		}
		return err
	}

	counts, err := s.store.SeedCounts(ctx)
	if err != nil {
		return s.fail(ctx, "seed counts", err)
	}
	s.logger.InfoContext(ctx, "store initialized",
		"categories", counts.Categories,
		"allergens", counts.Allergens,
		"locations", counts.Locations,
	)
	return nil
}

func (s *PantryService) SeedCounts(ctx context.Context) (domain.SeedCounts, error) {
	if err := s.ready(); err != nil {
		return domain.SeedCounts{}, err
	}
	counts, err := s.store.SeedCounts(ctx)
	if err != nil {
		return domain.SeedCounts{}, s.fail(ctx, "seed counts", err)
	}
	return counts, nil
}

func (s *PantryService) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.initErr == nil {
		return nil
	}
	if errors.Is(s.initErr, domain.ErrInitialization) {
		return s.initErr
	}
	return fmt.Errorf("%w: %w", domain.ErrInitialization, s.initErr)
}

func (s *PantryService) today() string {
	return s.clock.Now().Format(inventory.DateLayout)
}

// fail logs a store error and wraps it with the operation name. Not-found
// results are expected outcomes and are not logged as errors.
func (s *PantryService) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.DebugContext(ctx, "not found", "op", op)
	} else {
		s.logger.ErrorContext(ctx, "store call failed", "op", op, "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
