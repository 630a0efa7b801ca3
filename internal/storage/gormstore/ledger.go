package gormstore

import (
	"context"

	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type transactionRepo struct {
	db *gorm.DB
}

func (r *transactionRepo) Create(ctx context.Context, tx *models.Transaction) (uint, error) {
	tx.ID = 0
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return 0, writeErr(err)
	}
	return tx.ID, nil
}

func (r *transactionRepo) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tx, nil
}

func (r *transactionRepo) List(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *transactionRepo) Update(ctx context.Context, id uint, tx *models.Transaction) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	tx.ID = id
	if err := r.db.WithContext(ctx).Save(tx).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *transactionRepo) Delete(ctx context.Context, id uint) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error; err != nil {
		return writeErr(err)
	}
	return nil
}

func (r *transactionRepo) FindByField(ctx context.Context, field, value string, match storage.Match) ([]models.Transaction, error) {
	if err := checkField(field, "date", "description"); err != nil {
		return nil, err
	}
	var txs []models.Transaction
	q := searchClause(r.db.WithContext(ctx), field, value, match)
	if err := q.Order("id ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
