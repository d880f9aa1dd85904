package numbering

import (
	"context"
	"errors"
	"fmt"

	"github.com/sample1/member-api/internal/shared/database"
	"github.com/sample1/member-api/internal/shared/logger"
	"github.com/sample1/member-api/internal/shared/metrics"
	"gorm.io/gorm"
)

type NumberingService struct {
	db                  *gorm.DB
	numberingRepository *NumberingRepository
	recorder            metrics.Recorder
}

func NewNumberingService(db *gorm.DB, numberingRepository *NumberingRepository, recorder metrics.Recorder) *NumberingService {
	return &NumberingService{
		db:                  db,
		numberingRepository: numberingRepository,
		recorder:            recorder,
	}
}

// Allocate hands out the next value of seqID inside the caller's transaction
func (s *NumberingService) Allocate(ctx context.Context, tx *gorm.DB, seqID string) (int64, error) {
	value, err := s.numberingRepository.Allocate(ctx, tx, seqID)
	if err != nil {
		return 0, fmt.Errorf("채번 실패 seq_id=%s: %w", seqID, err)
	}

	s.recorder.RecordIdentityAllocated(seqID)
	logger.FromContext(ctx).Debug("채번 완료", "seq_id", seqID, "value", value)
	return value, nil
}

// Current returns the value the next allocation of seqID will hand out
func (s *NumberingService) Current(ctx context.Context, seqID string) (*SequenceResponse, error) {
	row, err := s.numberingRepository.FindBySeqID(ctx, s.db, seqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seq_id=%s %w", seqID, ErrSequenceNotFound)
		}
		return nil, fmt.Errorf("채번 조회 실패: %w", err)
	}

	return &SequenceResponse{SeqID: row.SeqID, NextVal: row.NextVal}, nil
}

// Reset sets the counter of seqID so the next allocation returns nextVal.
// Values already handed out are not checked; after a reset below existing ids
// registrations fail until the counter passes them.
func (s *NumberingService) Reset(ctx context.Context, seqID string, nextVal int64, operator string) (*SequenceResponse, error) {
	log := logger.FromContext(ctx)

	if nextVal < 1 {
		return nil, fmt.Errorf("next_val=%d %w", nextVal, ErrInvalidNextValue)
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.numberingRepository.Save(ctx, tx, seqID, nextVal)
	})
	if err != nil {
		log.Error("채번 초기화 실패", "seq_id", seqID, "error", err)
		return nil, fmt.Errorf("채번 초기화 실패: %w", err)
	}

	s.recorder.RecordSequenceReset(seqID)
	log.Warn("채번 초기화", "seq_id", seqID, "next_val", nextVal, "operator", operator)

	return &SequenceResponse{SeqID: seqID, NextVal: nextVal}, nil
}
