package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/gofrs/uuid"

	"github.com/traPtitech/oidp/model"
)

// Migrations 全てのデータベースマイグレーション
//
// 新たなマイグレーションを行う場合は、この配列の末尾に必ず追加すること
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		v1(), // デバイスフロー対応のためuser_codeカラムとインデックスを追加
	}
}

// AllTables 最新のスキーマの全テーブルモデル
//
// 最新のスキーマの全テーブルのモデル構造体を記述すること
// 種別別アーティファクトテーブルは動的な名前を持つため含まれません
func AllTables() []interface{} {
	return []interface{}{
		&model.Token{},
		&model.Authorization{},
		&model.Application{},
		&model.User{},
		&model.Scope{},
	}
}

// AllForeignKeys 最新のスキーマの全外部キー制約
//
// {テーブル名, 制約名, カラム, 参照先, ON DELETE, ON UPDATE}
func AllForeignKeys() [][6]string {
	return [][6]string{
		{"authorizations", "fk_authorizations_application_id", "application_id", "applications(id)", "CASCADE", "CASCADE"},
		{"tokens", "fk_tokens_application_id", "application_id", "applications(id)", "SET NULL", "CASCADE"},
		{"tokens", "fk_tokens_authorization_id", "authorization_id", "authorizations(id)", "SET NULL", "CASCADE"},
	}
}

// AllCompositeIndexes 最新のスキーマの全複合インデックス
//
// {インデックス名, テーブル名, カラム}
func AllCompositeIndexes() [][3]string {
	return [][3]string{
		{"idx_tokens_type_uid", "tokens", "type, uid"},
		{"idx_tokens_type_user_code", "tokens", "type, user_code"},
		{"idx_tokens_type_status", "tokens", "type, status"},
		{"idx_tokens_authorization_id", "tokens", "authorization_id"},
		{"idx_tokens_expires_at", "tokens", "expires_at"},
		{"idx_authorizations_subject", "authorizations", "subject"},
	}
}

// ArtifactIndexes 種別別アーティファクトテーブルの全インデックス
//
// {インデックス名サフィックス, カラム}
func ArtifactIndexes() [][2]string {
	return [][2]string{
		{"uid", "uid"},
		{"user_code", "user_code"},
		{"grant_id", "grant_id"},
		{"expires_at", "expires_at"},
	}
}

// DefaultScopes 初期投入する標準スコープ定義
func DefaultScopes() []*model.Scope {
	descriptions := map[string][2]string{
		"openid":         {"OpenID", "subject identifier"},
		"profile":        {"Profile", "name, display name and picture"},
		"email":          {"Email", "email address and verification state"},
		"offline_access": {"Offline Access", "refresh token issuance"},
	}

	scopes := make([]*model.Scope, 0, len(descriptions))
	for _, name := range model.SupportedAccessScopes() {
		d := descriptions[name]
		scopes = append(scopes, &model.Scope{
			ID:               uuid.Must(uuid.NewV7()).String(),
			Name:             name,
			DisplayName:      d[0],
			Description:      d[1],
			ConcurrencyStamp: uuid.Must(uuid.NewV4()).String(),
		})
	}
	return scopes
}
