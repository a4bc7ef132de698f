package cmd

import (
	"github.com/spf13/cobra"

	"github.com/traPtitech/oidp/migration"
)

// migrateコマンド
// データベーススキーママイグレーションのみを実行する
func migrateCommand() *cobra.Command {
	var dropDB bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Execute database schema migration only",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := getLogger()
			defer logger.Sync()

			engine, err := c.getDatabase(logger)
			if err != nil {
				return err
			}
			defer func() {
				db, _ := engine.DB()
				_ = db.Close()
			}()

			if dropDB {
				if err := migration.DropAll(engine); err != nil {
					return err
				}
			}
			init, err := migration.Migrate(engine)
			if err != nil {
				return err
			}
			if init {
				logger.Info("schema initialized")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dropDB, "reset", false, "whether to truncate database (drop all tables)")
	return cmd
}
