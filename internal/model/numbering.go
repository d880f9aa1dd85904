package model

// Numbering is one row of the NUMBERING table.
// NextVal is the value handed out by the next allocation; resetting it restarts the sequence.
type Numbering struct {
	SeqID   string `gorm:"column:seq_id;primaryKey;size:64"`
	NextVal int64  `gorm:"column:next_val;not null"`
}

// TableName specifies the table name for Numbering
func (*Numbering) TableName() string {
	return "numbering"
}

// MemberSequenceID is the NUMBERING key used for Member.ID
const MemberSequenceID = "MemberId"
