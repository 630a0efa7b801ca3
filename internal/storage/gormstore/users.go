package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (uint, error) {
	var existing models.User
	err := r.db.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return 0, fmt.Errorf("%w: %s", storage.ErrDuplicateUsername, user.Username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	user.ID = 0
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return 0, writeErr(err)
	}
	return user.ID, nil
}

func (r *userRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, id uint, user *models.User) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	user.ID = id
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *userRepo) FindByField(ctx context.Context, field, value string, match storage.Match) ([]models.User, error) {
	if err := checkField(field, "username", "role"); err != nil {
		return nil, err
	}
	var users []models.User
	q := searchClause(r.db.WithContext(ctx), field, value, match)
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
