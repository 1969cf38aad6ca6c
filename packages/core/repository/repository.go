// Package repository holds the gorm-backed stores used by the core services.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidReference = errors.New("invalid reference")
)

// Store is the persistence contract every entity service depends on.
type Store[T any] interface {
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]T, error)
	Save(ctx context.Context, e *T) error
	Delete(ctx context.Context, id uint) error
}

// translate maps gorm errors (TranslateError must be enabled) onto the
// repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	}
	return err
}

// Crud is a generic gorm Store. Preloads are applied to every read.
type Crud[T any] struct {
	db       *gorm.DB
	preloads []string
	order    string
}

func NewCrud[T any](db *gorm.DB, order string, preloads ...string) *Crud[T] {
	if order == "" {
		order = "id"
	}
	return &Crud[T]{db: db, preloads: preloads, order: order}
}

func (r *Crud[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *Crud[T]) Create(ctx context.Context, e *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *Crud[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var e T
	if err := r.query(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *Crud[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.query(ctx).Order(r.order).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *Crud[T]) Save(ctx context.Context, e *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error)
}

func (r *Crud[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
