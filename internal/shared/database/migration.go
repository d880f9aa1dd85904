package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sample1/member-api/internal/config"
	"github.com/sample1/member-api/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by this service, in creation order
func Models() []interface{} {
	return []interface{}{
		// Independent tables (no foreign keys)
		&model.Numbering{},
		&model.Member{},
	}
}

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	// Safety check: prevent accidental data loss in production
	if cfg.IsProduction() {
		return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
	}

	// Step 1: Drop all tables in reverse creation order
	slog.Info("🗑️  기존 테이블 삭제 중...")
	models := Models()
	migrator := db.Migrator()
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		if !migrator.HasTable(m) {
			continue
		}
		if err := migrator.DropTable(m); err != nil {
			slog.Debug("테이블 삭제 실패", "model", fmt.Sprintf("%T", m), "error", err)
		} else {
			slog.Debug("테이블 삭제 성공", "model", fmt.Sprintf("%T", m))
		}
	}

	// Step 2: Create tables
	slog.Info("📦 새 테이블 생성 중...")
	if err := runAutoMigrate(db); err != nil {
		return fmt.Errorf("테이블 생성 실패: %w", err)
	}

	// Step 3: Seed NUMBERING rows
	if err := seedNumbering(db, cfg.Numbering.InitialValue); err != nil {
		return fmt.Errorf("NUMBERING 초기화 실패: %w", err)
	}

	slog.Info("✅ 마이그레이션 완료!")
	return nil
}

// runAutoMigrate creates tables based on model definitions
func runAutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		slog.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}

	return nil
}

// seedNumbering inserts the member sequence row when it does not exist yet
func seedNumbering(db *gorm.DB, initialValue int64) error {
	var row model.Numbering
	err := db.Where("seq_id = ?", model.MemberSequenceID).First(&row).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row = model.Numbering{SeqID: model.MemberSequenceID, NextVal: initialValue}
	if err := db.Create(&row).Error; err != nil {
		return err
	}

	slog.Info("NUMBERING 행 생성", "seq_id", row.SeqID, "next_val", row.NextVal)
	return nil
}
