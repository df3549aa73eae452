package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager hands usecases a connection or a transaction. Repositories take
// the *gorm.DB they are given so the same method works inside and outside a
// transaction.
type TxManager interface {
	Conn(ctx context.Context) *gorm.DB
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}
