// Package service holds the business rules between the HTTP handlers and the
// repositories. Multi-row writes (combination and sale write paths) run in a
// single database transaction owned here; everything else is a direct
// repository call.
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors the handlers translate into response statuses. Services
// wrap them with entity context via fmt.Errorf("%w: ...").
var (
	// ErrNoEncontrado: the id does not exist or the row is soft-deleted.
	ErrNoEncontrado = errors.New("recurso no encontrado")
	// ErrValidacion: the request is structurally valid JSON/form data but
	// violates a business rule (empty item list, out-of-range default image
	// index, duplicate active price, …). Raised before any write.
	ErrValidacion = errors.New("solicitud inválida")
)

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with repository stubs).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
