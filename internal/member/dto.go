package member

import (
	"math"
	"time"

	"github.com/sample1/member-api/internal/model"
)

// MemberRequest holds the client supplied fields.
// Field rules are checked by Validator so that every violation is reported at once.
type MemberRequest struct {
	Name         string `json:"name"`
	MembershipCd int64  `json:"membershipCd"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
}

func (r *MemberRequest) toModel() *model.Member {
	return model.NewMember(r.Name, narrowInt32(r.MembershipCd), r.Email, r.PhoneNumber)
}

// narrowInt32 saturates v to the int32 range. The membershipCd bounds lie inside
// int32, so a value that did not fit still fails the range rule after narrowing.
func narrowInt32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

// UpdateMemberRequest must carry the version the client last read
type UpdateMemberRequest struct {
	MemberRequest
	Version *int64 `json:"version" binding:"required"`
}

type MemberResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Version      int64     `json:"version"`
	MembershipCd int32     `json:"membershipCd"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newMemberResponse(m *model.Member) *MemberResponse {
	return &MemberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Version:      m.Version,
		MembershipCd: m.MembershipCd,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type ListMembersQuery struct {
	Page int `form:"page,default=1" binding:"min=1"`
	Size int `form:"size,default=20" binding:"min=1,max=100"`
}

type ListMembersResponse struct {
	Items []*MemberResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

type DeleteMemberQuery struct {
	Version *int64 `form:"version"`
}

type ValidateResponse struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}
