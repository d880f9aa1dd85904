package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sample1/member-api/internal/shared/logger"
	"gorm.io/gorm"
)

var ErrNilTransactionFunc = errors.New("database: transaction function is nil")

// WithTransaction runs fn in one transaction bound to ctx.
// tx already carries ctx, so repositories take it as their db argument.
// Returning an error from fn rolls back every write, including numbering allocations.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    id, err := numberingService.Allocate(ctx, tx, model.MemberSequenceID)
//	    if err != nil {
//	        return err // rollback
//	    }
//	    member.ID = id
//	    return repo.Create(ctx, tx, member) // commit on nil
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	if fn == nil {
		return ErrNilTransactionFunc
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := db.WithContext(ctx).Transaction(fn, opts...); err != nil {
		logger.FromContext(ctx).Debug("트랜잭션 롤백", "error", err)
		return err
	}
	return nil
}
