package member

import (
	"context"

	"github.com/sample1/member-api/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// IsEmailTaken reports whether another member (excludeID aside) uses email
func (m *MemberRepository) IsEmailTaken(ctx context.Context, db *gorm.DB, email string, excludeID int64) (bool, error) {
	var count int64
	query := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]model.Member, error) {
	var members []model.Member
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (m *MemberRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Member{}).Count(&count).Error
	return count, err
}

// UpdateIfVersion writes the business fields of member only when the stored
// version still equals expectedVersion, storing NextVersion(expectedVersion).
// It returns the number of rows written (0 or 1).
func (m *MemberRepository) UpdateIfVersion(ctx context.Context, db *gorm.DB, member *model.Member, expectedVersion int64) (int64, error) {
	result := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ? AND version = ?", member.ID, expectedVersion).
		Updates(map[string]interface{}{
			"user_name":     member.Name,
			"membership_cd": member.MembershipCd,
			"email":         member.Email,
			"phone_number":  member.PhoneNumber,
			"version":       NextVersion(expectedVersion),
		})
	return result.RowsAffected, result.Error
}

// Delete removes the member; when version is given it must match the stored one
func (m *MemberRepository) Delete(ctx context.Context, db *gorm.DB, id int64, version *int64) (int64, error) {
	query := db.WithContext(ctx).Where("id = ?", id)
	if version != nil {
		query = query.Where("version = ?", *version)
	}

	result := query.Delete(&model.Member{})
	return result.RowsAffected, result.Error
}
