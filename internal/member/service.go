package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/sample1/member-api/internal/model"
	"github.com/sample1/member-api/internal/shared/database"
	"github.com/sample1/member-api/internal/shared/logger"
	"github.com/sample1/member-api/internal/shared/metrics"
	sharedValidator "github.com/sample1/member-api/internal/shared/validator"
	"gorm.io/gorm"
)

// IdentityAllocator hands out surrogate keys from a shared counter store.
// Allocate runs inside the caller's transaction so a failed insert returns the value.
type IdentityAllocator interface {
	Allocate(ctx context.Context, tx *gorm.DB, seqID string) (int64, error)
}

var errIdentityInUse = errors.New("member: allocated id is already in use")

type MemberService struct {
	db                *gorm.DB
	memberRepository  *MemberRepository
	identityAllocator IdentityAllocator
	validator         *Validator
	recorder          metrics.Recorder
}

func NewMemberService(
	db *gorm.DB,
	memberRepository *MemberRepository,
	identityAllocator IdentityAllocator,
	validator *Validator,
	recorder metrics.Recorder,
) *MemberService {
	return &MemberService{
		db:                db,
		memberRepository:  memberRepository,
		identityAllocator: identityAllocator,
		validator:         validator,
		recorder:          recorder,
	}
}

// Validate runs the field rules without touching storage
func (s *MemberService) Validate(request *MemberRequest) ValidationResult {
	return s.validator.Validate(request.toModel())
}

// AssignIdentity allocates the next member id from the MemberId sequence
func (s *MemberService) AssignIdentity(ctx context.Context, tx *gorm.DB) (int64, error) {
	id, err := s.identityAllocator.Allocate(ctx, tx, model.MemberSequenceID)
	if err != nil {
		return 0, fmt.Errorf("assign identity: %w", err)
	}
	return id, nil
}

func (s *MemberService) Register(ctx context.Context, request *MemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)

	member := request.toModel()
	if err := s.check(ctx, member); err != nil {
		return nil, err
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.ensureEmailAvailable(ctx, tx, member.Email, 0); err != nil {
			return err
		}

		id, err := s.AssignIdentity(ctx, tx)
		if err != nil {
			log.Error("Failed to assign member id", "error", err)
			return err
		}

		// 관리자가 NUMBERING을 기존 ID 아래로 되돌린 경우
		if _, err := s.memberRepository.FindByID(ctx, tx, id); err == nil {
			log.Error("Allocated member id is already in use", "id", id, "seq_id", model.MemberSequenceID)
			return fmt.Errorf("id=%d: %w", id, errIdentityInUse)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check member id: %w", err)
		}

		member.ID = id
		member.Version = InitialVersion
		if err := s.memberRepository.Create(ctx, tx, member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return s.emailConflict(ctx, member.Email)
			}
			log.Error("Failed to create member", "error", err)
			return fmt.Errorf("create member: %w", err)
		}

		log.Info("Member created successfully",
			"id", member.ID, "email", logger.MaskEmail(member.Email), "phone", logger.MaskPhone(member.PhoneNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return newMemberResponse(member), nil
}

func (s *MemberService) Get(ctx context.Context, id int64) (*MemberResponse, error) {
	member, err := s.memberRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", id, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	return newMemberResponse(member), nil
}

func (s *MemberService) List(ctx context.Context, query *ListMembersQuery) (*ListMembersResponse, error) {
	total, err := s.memberRepository.Count(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("회원 수 조회 실패: %w", err)
	}

	members, err := s.memberRepository.FindAll(ctx, s.db, (query.Page-1)*query.Size, query.Size)
	if err != nil {
		return nil, fmt.Errorf("회원 목록 조회 실패: %w", err)
	}

	items := make([]*MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, newMemberResponse(&members[i]))
	}

	return &ListMembersResponse{
		Items: items,
		Total: total,
		Page:  query.Page,
		Size:  query.Size,
	}, nil
}

// Update rewrites the business fields when request.Version is still current.
// A stale version is rejected with ErrVersionConflict, never merged.
func (s *MemberService) Update(ctx context.Context, id int64, request *UpdateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)

	if request.Version == nil {
		return nil, &ValidationError{Violations: []Violation{{Field: "version", Rule: sharedValidator.RuleRequired}}}
	}

	member := request.toModel()
	member.ID = id
	if err := s.check(ctx, member); err != nil {
		return nil, err
	}

	var updated *model.Member
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		// 존재하지 않는 회원은 이메일 충돌보다 먼저 404로 보고
		if _, err := s.memberRepository.FindByID(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("memberID=%d %w", id, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if err := s.ensureEmailAvailable(ctx, tx, member.Email, id); err != nil {
			return err
		}

		rows, err := s.memberRepository.UpdateIfVersion(ctx, tx, member, *request.Version)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return s.emailConflict(ctx, member.Email)
			}
			return fmt.Errorf("update member: %w", err)
		}
		if rows == 0 {
			return s.explainMissedWrite(ctx, tx, id, *request.Version)
		}

		updated, err = s.memberRepository.FindByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("reload member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Member updated", "id", id, "version", updated.Version)
	return newMemberResponse(updated), nil
}

// Delete removes a member. When version is not nil it must match the stored version.
func (s *MemberService) Delete(ctx context.Context, id int64, version *int64) error {
	log := logger.FromContext(ctx)

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		rows, err := s.memberRepository.Delete(ctx, tx, id, version)
		if err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		if rows == 0 {
			expected := int64(-1)
			if version != nil {
				expected = *version
			}
			return s.explainMissedWrite(ctx, tx, id, expected)
		}

		log.Info("Member deleted", "id", id)
		return nil
	})
}

// check validates member and records every violation
func (s *MemberService) check(ctx context.Context, member *model.Member) error {
	result := s.validator.Validate(member)
	if result.Valid() {
		return nil
	}

	for _, v := range result.Violations {
		s.recorder.RecordValidationFailure(v.Field, v.Rule)
	}
	logger.FromContext(ctx).Warn("Member validation failed", "violations", result.Violations)
	return &ValidationError{Violations: result.Violations}
}

func (s *MemberService) ensureEmailAvailable(ctx context.Context, tx *gorm.DB, email string, excludeID int64) error {
	taken, err := s.memberRepository.IsEmailTaken(ctx, tx, email, excludeID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to check email uniqueness", "error", err)
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if taken {
		return s.emailConflict(ctx, email)
	}
	return nil
}

func (s *MemberService) emailConflict(ctx context.Context, email string) error {
	s.recorder.RecordConflict(metrics.ConflictEmail)
	logger.FromContext(ctx).Warn("Email already registered", "email", logger.MaskEmail(email))
	return fmt.Errorf("email=%s %w", logger.MaskEmail(email), ErrEmailAlreadyExists)
}

// explainMissedWrite tells a missing row apart from a stale version after a
// conditional write matched nothing
func (s *MemberService) explainMissedWrite(ctx context.Context, tx *gorm.DB, id, expectedVersion int64) error {
	current, err := s.memberRepository.FindByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("memberID=%d %w", id, ErrMemberNotFound)
		}
		return fmt.Errorf("회원 조회 실패: %w", err)
	}

	s.recorder.RecordConflict(metrics.ConflictVersion)
	logger.FromContext(ctx).Warn("Optimistic lock conflict",
		"id", id, "expected_version", expectedVersion, "current_version", current.Version)
	return fmt.Errorf("memberID=%d expected=%d current=%d %w", id, expectedVersion, current.Version, ErrVersionConflict)
}
