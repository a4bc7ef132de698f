package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// v1 デバイスフロー対応のためuser_codeカラムとインデックスを追加
func v1() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "1",
		Migrate: func(db *gorm.DB) error {
			if err := db.Exec("ALTER TABLE tokens ADD COLUMN user_code VARCHAR(64) NULL AFTER uid").Error; err != nil {
				return err
			}
			if err := db.Exec("CREATE INDEX idx_tokens_type_user_code ON tokens (type, user_code)").Error; err != nil {
				return err
			}
			if err := db.Exec("ALTER TABLE oidc_device_codes ADD COLUMN user_code VARCHAR(64) NULL AFTER uid").Error; err != nil {
				return err
			}
			return db.Exec("CREATE INDEX idx_oidc_device_codes_user_code ON oidc_device_codes (user_code)").Error
		},
		Rollback: func(db *gorm.DB) error {
			if err := db.Exec("DROP INDEX idx_oidc_device_codes_user_code ON oidc_device_codes").Error; err != nil {
				return err
			}
			if err := db.Exec("ALTER TABLE oidc_device_codes DROP COLUMN user_code").Error; err != nil {
				return err
			}
			if err := db.Exec("DROP INDEX idx_tokens_type_user_code ON tokens").Error; err != nil {
				return err
			}
			return db.Exec("ALTER TABLE tokens DROP COLUMN user_code").Error
		},
	}
}
