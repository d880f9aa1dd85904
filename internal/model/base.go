package model

import (
	"time"
)

// 감사(audit) 컬럼 - GORM이 CreatedAt, UpdatedAt을 자동으로 관리
// 버전 비교 UPDATE(map 기반)에서도 updated_at은 GORM이 채운다
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"-"`
}
