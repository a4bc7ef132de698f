package migration

import (
	"database/sql"
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/traPtitech/oidp/model"
)

// Migrate データベースマイグレーションを実行します
//
// スキーマが初期化された場合、trueを返します。
func Migrate(db *gorm.DB) (init bool, err error) {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:      "migrations",
		IDColumnName:   "id",
		IDColumnSize:   190,
		UseTransaction: false,
	}, Migrations())
	m.InitSchema(func(db *gorm.DB) error {
		// 初回のみに呼ばれる
		// 全ての最新のデータベース定義を書く事
		init = true

		// テーブル
		if err := db.AutoMigrate(AllTables()...); err != nil {
			return err
		}

		// 種別別アーティファクトテーブル
		for _, kind := range model.ArtifactKinds() {
			if err := db.Table(kind.TableName()).AutoMigrate(&model.Artifact{}); err != nil {
				return err
			}
			for _, idx := range ArtifactIndexes() {
				stmt := fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s (%s)", kind.TableName(), idx[0], kind.TableName(), idx[1])
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
		}

		// 外部キー制約
		for _, c := range AllForeignKeys() {
			stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s ON DELETE %s ON UPDATE %s", c[0], c[1], c[2], c[3], c[4], c[5])
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}

		// 複合インデックス
		for _, v := range AllCompositeIndexes() {
			stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", v[0], v[1], v[2])
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}

		// 標準スコープ定義投入
		for _, v := range DefaultScopes() {
			if err := db.Create(v).Error; err != nil {
				return err
			}
		}

		return nil
	})
	return init, m.Migrate()
}

// DropAll データベースの全テーブルを削除します
func DropAll(db *gorm.DB) error {
	// 外部キー制約があるため削除順に依存しないようチェックを無効化する
	if err := db.Exec("SET FOREIGN_KEY_CHECKS = 0").Error; err != nil {
		return err
	}
	defer db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	if err := db.Migrator().DropTable(AllTables()...); err != nil {
		return err
	}
	for _, kind := range model.ArtifactKinds() {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", kind.TableName())).Error; err != nil {
			return err
		}
	}
	return db.Migrator().DropTable("migrations")
}

// CreateDatabasesIfNotExists データベースが存在しない場合、作成します
func CreateDatabasesIfNotExists(dialect, dsn, prefix string, names ...string) error {
	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, v := range names {
		_, err = conn.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s%s` CHARACTER SET = utf8mb4", prefix, v))
		if err != nil {
			return err
		}
	}
	return nil
}
