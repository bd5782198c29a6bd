package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
)

// IdempotencyRepository stores processed request keys for response replay.
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, cashierID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
