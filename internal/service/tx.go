package service

import (
	"context"
	"strings"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// maxReintentos bounds retries of transactions aborted by lock contention.
const maxReintentos = 3

// conReintentos runs op up to maxReintentos times while it keeps failing
// with a concurrency conflict. Any other error aborts immediately.
func conReintentos(op func() error) error {
	var err error
	for i := 0; i < maxReintentos; i++ {
		err = op()
		if err == nil || !apierror.EsConflictoConcurrencia(err) {
			return err
		}
	}
	return err
}

// esConflictoDB maps driver-level lock/serialization failures onto the
// retryable sentinel. Postgres reports these as deadlock detected (40P01)
// and serialization failure (40001).
func esConflictoDB(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "40001") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access")
}

// esDuplicadoDB reports whether err is a Postgres unique violation (23505),
// e.g. the partial index that keeps one open cash session per operator.
func esDuplicadoDB(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value")
}

func traducirConflicto(err error) error {
	if esConflictoDB(err) {
		return apierror.ErrConflictoConcurrencia
	}
	return err
}
