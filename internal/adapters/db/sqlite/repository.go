package sqlite

import (
	"context"
	"log/slog"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/logging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Repository implements the reference-data and pantry ports over gorm.
// Every statement binds its values; nothing user supplied is spliced into SQL.
type Repository struct {
	db *gorm.DB
}

// Open opens the SQLite file at path (":memory:" works for tests). SQL is
// traced through logger at debug level; a nil logger silences gorm.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	var gl gormlogger.Interface = gormlogger.Discard
	if logger != nil {
		gl = logging.NewGormLogger(logger)
	}

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{Logger: gl})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One writer, one connection; also keeps a :memory: database alive.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRepository wraps an open database; it does not migrate or seed.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows := make([]CategoryModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Category, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Category{ID: m.ID, Name: m.Name})
	}
	return result, nil
}

func (r *Repository) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	m := CategoryModel{Name: name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: m.ID, Name: m.Name}, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id uint, name string) error {
	return r.rename(ctx, &CategoryModel{}, id, name)
}

func (r *Repository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&CategoryModel{}).Error
}

func (r *Repository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	rows := make([]BrandModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Brand, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Brand{ID: m.ID, Name: m.Name})
	}
	return result, nil
}

func (r *Repository) AddBrand(ctx context.Context, name string) (domain.Brand, error) {
	m := BrandModel{Name: name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Brand{}, err
	}
	return domain.Brand{ID: m.ID, Name: m.Name}, nil
}

func (r *Repository) UpdateBrand(ctx context.Context, id uint, name string) error {
	return r.rename(ctx, &BrandModel{}, id, name)
}

func (r *Repository) DeleteBrand(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&BrandModel{}).Error
}

func (r *Repository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows := make([]LocationModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Location, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Location{ID: m.ID, Name: m.Name})
	}
	return result, nil
}

func (r *Repository) AddLocation(ctx context.Context, name string) (domain.Location, error) {
	m := LocationModel{Name: name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Location{}, err
	}
	return domain.Location{ID: m.ID, Name: m.Name}, nil
}

func (r *Repository) UpdateLocation(ctx context.Context, id uint, name string) error {
	return r.rename(ctx, &LocationModel{}, id, name)
}

func (r *Repository) DeleteLocation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&LocationModel{}).Error
}

func (r *Repository) ListAllergens(ctx context.Context) ([]domain.Allergen, error) {
	rows := make([]AllergenModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Allergen, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Allergen{ID: m.ID, Name: m.Name})
	}
	return result, nil
}

func (r *Repository) rename(ctx context.Context, model any, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
