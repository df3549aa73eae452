package repository

import (
	"context"

	domainRepo "hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) Conn(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx)
}

// Do runs fn in a transaction. Any error or panic from fn rolls it back.
func (m *txManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
