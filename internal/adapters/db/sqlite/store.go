package sqlite

import (
	"context"
	"fmt"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"gorm.io/gorm"
)

// Store owns the schema and seed contract on top of Repository.
type Store struct {
	*Repository
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{Repository: NewRepository(db), db: db}
}

// Initialize creates missing tables and seeds empty reference tables. It is
// safe to call on every start.
func (s *Store) Initialize(ctx context.Context) error {
	if err := RunMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("%w: migrate: %w", domain.ErrInitialization, err)
	}
	if err := Seed(ctx, s.db); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInitialization, err)
	}
	return nil
}

func (s *Store) SeedCounts(ctx context.Context) (domain.SeedCounts, error) {
	var out domain.SeedCounts
	db := s.db.WithContext(ctx)
	if err := db.Model(&CategoryModel{}).Count(&out.Categories).Error; err != nil {
		return domain.SeedCounts{}, err
	}
	if err := db.Model(&AllergenModel{}).Count(&out.Allergens).Error; err != nil {
		return domain.SeedCounts{}, err
	}
	if err := db.Model(&LocationModel{}).Count(&out.Locations).Error; err != nil {
		return domain.SeedCounts{}, err
	}
	return out, nil
}

var _ domain.Store = (*Store)(nil)
