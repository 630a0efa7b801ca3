package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type bikeRepo struct {
	db *gorm.DB
}

func (r *bikeRepo) Create(ctx context.Context, bike *models.Bike) (uint, error) {
	bike.ID = 0
	if err := r.db.WithContext(ctx).Create(bike).Error; err != nil {
		return 0, writeErr(err)
	}
	return bike.ID, nil
}

func (r *bikeRepo) Get(ctx context.Context, id uint) (*models.Bike, error) {
	var bike models.Bike
	if err := r.db.WithContext(ctx).First(&bike, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &bike, nil
}

func (r *bikeRepo) List(ctx context.Context) ([]models.Bike, error) {
	var bikes []models.Bike
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bikes).Error; err != nil {
		return nil, err
	}
	return bikes, nil
}

func (r *bikeRepo) ListInStock(ctx context.Context) ([]models.Bike, error) {
	var bikes []models.Bike
	if err := r.db.WithContext(ctx).Where("quantity > 0").Order("id ASC").Find(&bikes).Error; err != nil {
		return nil, err
	}
	return bikes, nil
}

func (r *bikeRepo) Update(ctx context.Context, id uint, bike *models.Bike) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	bike.ID = id
	if err := r.db.WithContext(ctx).Save(bike).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *bikeRepo) Delete(ctx context.Context, id uint) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Bike{}, id).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *bikeRepo) FindByField(ctx context.Context, field, value string, match storage.Match) ([]models.Bike, error) {
	if err := checkField(field, "model", "brand"); err != nil {
		return nil, err
	}
	var bikes []models.Bike
	q := searchClause(r.db.WithContext(ctx), field, value, match)
	if err := q.Order("id ASC").Find(&bikes).Error; err != nil {
		return nil, err
	}
	return bikes, nil
}

func (r *bikeRepo) Lookup(ctx context.Context, id uint) (storage.ItemInfo, error) {
	bike, err := r.Get(ctx, id)
	if err != nil {
		return storage.ItemInfo{}, err
	}
	return storage.ItemInfo{Price: bike.Price, Quantity: bike.Quantity}, nil
}

func (r *bikeRepo) AdjustQuantity(ctx context.Context, id uint, delta int) error {
	var bike models.Bike
	if err := r.db.WithContext(ctx).First(&bike, id).Error; err != nil {
		return notFound(err)
	}
	next := int(bike.Quantity) + delta
	if next < 0 {
		return fmt.Errorf("%w: bike %d has %d, requested %d",
			storage.ErrInsufficientStock, id, bike.Quantity, -delta)
	}
	if err := r.db.WithContext(ctx).Model(&bike).Update("quantity", next).Error; err != nil {
		return writeErr(err)
	}
	return nil
}
