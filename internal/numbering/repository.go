package numbering

import (
	"context"
	"errors"
	"fmt"

	"github.com/sample1/member-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxAllocateAttempts bounds the compare-and-swap retries of Allocate
const maxAllocateAttempts = 5

var errAllocationContention = errors.New("numbering: allocation lost to concurrent writers")

// NumberingRepository reads and advances NUMBERING rows.
// Like the other repositories it takes the *gorm.DB per call so callers can pass a transaction.
type NumberingRepository struct {
	initialValue int64
}

func NewNumberingRepository(initialValue int64) *NumberingRepository {
	return &NumberingRepository{initialValue: initialValue}
}

// Allocate returns the current NEXT_VAL for seqID and stores NEXT_VAL+1.
// The row is locked (SELECT ... FOR UPDATE where supported) and the update is
// conditional on the value read, so a value is never handed out twice.
func (r *NumberingRepository) Allocate(ctx context.Context, db *gorm.DB, seqID string) (int64, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		// Find instead of First: Oracle rejects FOR UPDATE combined with FETCH FIRST
		var rows []model.Numbering
		err := db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("seq_id = ?", seqID).
			Find(&rows).Error
		if err != nil {
			return 0, err
		}

		if len(rows) == 0 {
			// 행이 없으면 초기값을 발급하고 다음 값을 저장
			row := model.Numbering{SeqID: seqID, NextVal: r.initialValue + 1}
			result := db.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&row)
			if result.Error != nil {
				return 0, result.Error
			}
			if result.RowsAffected == 0 {
				continue // created concurrently; read it again
			}
			return r.initialValue, nil
		}
		row := rows[0]

		result := db.WithContext(ctx).
			Model(&model.Numbering{}).
			Where("seq_id = ? AND next_val = ?", seqID, row.NextVal).
			Update("next_val", row.NextVal+1)
		if result.Error != nil {
			return 0, result.Error
		}
		if result.RowsAffected == 1 {
			return row.NextVal, nil
		}
	}

	return 0, fmt.Errorf("seq_id=%s: %w", seqID, errAllocationContention)
}

func (r *NumberingRepository) FindBySeqID(ctx context.Context, db *gorm.DB, seqID string) (*model.Numbering, error) {
	var row model.Numbering
	err := db.WithContext(ctx).Where("seq_id = ?", seqID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save upserts the counter of seqID
func (r *NumberingRepository) Save(ctx context.Context, db *gorm.DB, seqID string, nextVal int64) error {
	return db.WithContext(ctx).Save(&model.Numbering{SeqID: seqID, NextVal: nextVal}).Error
}
