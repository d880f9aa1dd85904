package model

// Member is a registered member record.
// ID is issued from the NUMBERING table (SEQ_ID = 'MemberId'), not by the database.
// Version is the optimistic lock token: compared and incremented on every update.
type Member struct {
	// Surrogate key - assigned from NUMBERING before insert
	ID int64 `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`

	Name    string `gorm:"column:user_name;size:25;not null" json:"name" validate:"min=1,max=25,nodigits"` // 이름 (숫자 불가)
	Version int64  `gorm:"column:version;not null;default:0" json:"version"`                                // 낙관적 락 버전

	MembershipCd int32  `gorm:"column:membership_cd;not null" json:"membershipCd" validate:"min=10000000,max=99999999"`            // 가맹점 코드 (8자리)
	Email        string `gorm:"column:email;size:255;not null;uniqueIndex:uk_user_mst_email" json:"email" validate:"required,email"` // 이메일 (unique)
	PhoneNumber  string `gorm:"column:phone_number;size:12;not null" json:"phoneNumber" validate:"required,min=10,max=12,digitsonly"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "user_mst"
}

// NewMember creates a new Member instance before identity assignment
// ID and Version are managed by the storage layer
func NewMember(name string, membershipCd int32, email, phoneNumber string) *Member {
	return &Member{
		Name:         name,
		MembershipCd: membershipCd,
		Email:        email,
		PhoneNumber:  phoneNumber,
	}
}
