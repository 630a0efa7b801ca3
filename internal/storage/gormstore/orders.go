package gormstore

import (
	"context"

	"gorm.io/gorm"

	"bikeshop/internal/models"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order.ID = 0
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].OrderID = order.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, writeErr(err)
	}
	return order.ID, nil
}

func (r *orderRepo) Get(ctx context.Context, id uint) (*models.Order, []models.OrderLine, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, nil, notFound(err)
	}
	var lines []models.OrderLine
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, nil, err
	}
	return &order, lines, nil
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
