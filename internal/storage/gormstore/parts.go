package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type partRepo struct {
	db *gorm.DB
}

func (r *partRepo) Create(ctx context.Context, part *models.Part) (uint, error) {
	part.ID = 0
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return 0, writeErr(err)
	}
	return part.ID, nil
}

func (r *partRepo) Get(ctx context.Context, id uint) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).First(&part, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &part, nil
}

func (r *partRepo) List(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *partRepo) ListInStock(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	if err := r.db.WithContext(ctx).Where("quantity > 0").Order("id ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *partRepo) Update(ctx context.Context, id uint, part *models.Part) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	part.ID = id
	if err := r.db.WithContext(ctx).Save(part).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *partRepo) Delete(ctx context.Context, id uint) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Part{}, id).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *partRepo) FindByField(ctx context.Context, field, value string, match storage.Match) ([]models.Part, error) {
	if err := checkField(field, "name", "category"); err != nil {
		return nil, err
	}
	var parts []models.Part
	q := searchClause(r.db.WithContext(ctx), field, value, match)
	if err := q.Order("id ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *partRepo) Lookup(ctx context.Context, id uint) (storage.ItemInfo, error) {
	part, err := r.Get(ctx, id)
	if err != nil {
		return storage.ItemInfo{}, err
	}
	return storage.ItemInfo{Price: part.Price, Quantity: part.Quantity}, nil
}

func (r *partRepo) AdjustQuantity(ctx context.Context, id uint, delta int) error {
	var part models.Part
	if err := r.db.WithContext(ctx).First(&part, id).Error; err != nil {
		return notFound(err)
	}
	next := int(part.Quantity) + delta
	if next < 0 {
		return fmt.Errorf("%w: part %d has %d, requested %d",
			storage.ErrInsufficientStock, id, part.Quantity, -delta)
	}
	if err := r.db.WithContext(ctx).Model(&part).Update("quantity", next).Error; err != nil {
		return writeErr(err)
	}
	return nil
}
