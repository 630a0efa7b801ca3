package gormstore

import (
	"context"

	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type staffRepo struct {
	db *gorm.DB
}

func (r *staffRepo) Create(ctx context.Context, staff *models.Staff) (uint, error) {
	staff.ID = 0
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return 0, writeErr(err)
	}
	return staff.ID, nil
}

func (r *staffRepo) Get(ctx context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &staff, nil
}

func (r *staffRepo) List(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepo) Update(ctx context.Context, id uint, staff *models.Staff) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	staff.ID = id
	if err := r.db.WithContext(ctx).Save(staff).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *staffRepo) Delete(ctx context.Context, id uint) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Staff{}, id).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *staffRepo) FindByField(ctx context.Context, field, value string, match storage.Match) ([]models.Staff, error) {
	if err := checkField(field, "name", "position"); err != nil {
		return nil, err
	}
	var staff []models.Staff
	q := searchClause(r.db.WithContext(ctx), field, value, match)
	if err := q.Order("id ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
