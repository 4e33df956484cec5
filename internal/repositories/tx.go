package repositories

import (
	"database/sql"
	"fmt"
)

// TxManager runs a function inside a single database transaction. Every
// multi-step mutation in the system (stock allocation, recipe execution,
// expiry sweep, recipe create/update with children) goes through WithinTx so
// that a failure at any step leaves no partial mutation behind.
type TxManager interface {
	WithinTx(fn func(executor SQLExecutor) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager backed by *sql.DB transactions.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) WithinTx(fn func(executor SQLExecutor) error) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
