package application

import (
	"context"
	"strings"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

const maxNameLength = 120

func (s *PantryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list categories", err)
	}
	return out, nil
}

func (s *PantryService) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	if err := s.ready(); err != nil {
		return domain.Category{}, err
	}
	name, err := cleanName("name", name)
	if err != nil {
		return domain.Category{}, err
	}
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return domain.Category{}, domain.ErrDuplicate
		}
	}
	out, err := s.store.AddCategory(ctx, name)
	if err != nil {
		return domain.Category{}, s.fail(ctx, "add category", err)
	}
	return out, nil
}

func (s *PantryService) RenameCategory(ctx context.Context, id uint, name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == 0 {
		return domain.Invalid("id", "is required")
	}
	name, err := cleanName("name", name)
	if err != nil {
		return err
	}
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID != id && strings.EqualFold(c.Name, name) {
			return domain.ErrDuplicate
		}
	}
	if err := s.store.UpdateCategory(ctx, id, name); err != nil {
		return s.fail(ctx, "rename category", err)
	}
	return nil
}

// DeleteCategory removes the row even when items still reference it; those
// items are shown under "Unknown Category" afterwards.
func (s *PantryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return s.fail(ctx, "delete category", err)
	}
	return nil
}

func (s *PantryService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListBrands(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list brands", err)
	}
	return out, nil
}

func (s *PantryService) AddBrand(ctx context.Context, name string) (domain.Brand, error) {
	if err := s.ready(); err != nil {
		return domain.Brand{}, err
	}
	name, err := cleanName("name", name)
	if err != nil {
		return domain.Brand{}, err
	}
	out, err := s.store.AddBrand(ctx, name)
	if err != nil {
		return domain.Brand{}, s.fail(ctx, "add brand", err)
	}
	return out, nil
}

func (s *PantryService) RenameBrand(ctx context.Context, id uint, name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == 0 {
		return domain.Invalid("id", "is required")
	}
	name, err := cleanName("name", name)
	if err != nil {
		return err
	}
	if err := s.store.UpdateBrand(ctx, id, name); err != nil {
		return s.fail(ctx, "rename brand", err)
	}
	return nil
}

func (s *PantryService) DeleteBrand(ctx context.Context, id uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteBrand(ctx, id); err != nil {
		return s.fail(ctx, "delete brand", err)
	}
	return nil
}

func (s *PantryService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list locations", err)
	}
	return out, nil
}

func (s *PantryService) AddLocation(ctx context.Context, name string) (domain.Location, error) {
	if err := s.ready(); err != nil {
		return domain.Location{}, err
	}
	name, err := cleanName("name", name)
	if err != nil {
		return domain.Location{}, err
	}
	out, err := s.store.AddLocation(ctx, name)
	if err != nil {
		return domain.Location{}, s.fail(ctx, "add location", err)
	}
	return out, nil
}

func (s *PantryService) RenameLocation(ctx context.Context, id uint, name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == 0 {
		return domain.Invalid("id", "is required")
	}
	name, err := cleanName("name", name)
	if err != nil {
		return err
	}
	if err := s.store.UpdateLocation(ctx, id, name); err != nil {
		return s.fail(ctx, "rename location", err)
	}
	return nil
}

func (s *PantryService) DeleteLocation(ctx context.Context, id uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteLocation(ctx, id); err != nil {
		return s.fail(ctx, "delete location", err)
	}
	return nil
}

func (s *PantryService) ListAllergens(ctx context.Context) ([]domain.Allergen, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListAllergens(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list allergens", err)
	}
	return out, nil
}

func cleanName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid(field, "is required")
	}
	if len(name) > maxNameLength {
		return "", domain.Invalid(field, "is too long")
	}
	return name, nil
}
