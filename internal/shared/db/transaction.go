// Package db carries the gorm transaction plumbing shared by the
// repositories. A transaction travels inside the context, so work spanning
// several repositories commits or rolls back as one unit without the
// repositories knowing about each other.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// Transactional runs fn inside a database transaction. The transaction is
// injected into the derived context, so any repository call made with it
// joins the same transaction through GetTxFromContext. fn returning an
// error rolls everything back.
func Transactional(ctx context.Context, base *gorm.DB, fn func(ctx context.Context) error) error {
	return base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// GetTxFromContext returns the transaction carried by the context, or the
// default handle when the caller is not inside one.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
