package store

import (
	"context"

	"gorm.io/gorm"
)

// Store is the entity store over a relational database. All operations
// take the database handle they were constructed with; Atomic yields a
// transaction-scoped Store so multi-step mutations share one transaction
// without any ambient global state.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Atomic runs fn inside a single database transaction. Every write made
// through the Store passed to fn becomes visible together or not at all.
func (s *Store) Atomic(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
