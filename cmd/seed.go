package cmd

import (
	"errors"
	"fmt"

	"github.com/guregu/null"
	"github.com/leandro-lugaresi/hub"
	"github.com/spf13/cobra"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	repogorm "github.com/traPtitech/oidp/repository/gorm"
	"github.com/traPtitech/oidp/utils/random"
)

// seedコマンド
// 開発用の初期データ(クライアント・ユーザー)を投入する
func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed development clients and users",
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

			repo, err := repogorm.NewGormRepository(engine, hub.New(), logger)
			if err != nil {
				return err
			}
			if _, err := repo.Sync(); err != nil {
				return err
			}

			secret := random.SecureAlphaNumeric(32)
			apps := []*model.Application{
				{
					ClientID:    "admin_client",
					ClientType:  model.ClientTypePublic,
					DisplayName: "Admin Console",
					ConsentType: "implicit",
					Permissions: model.Permissions{
						model.PermissionGrantTypePrefix + "authorization_code",
						model.PermissionGrantTypePrefix + "refresh_token",
						model.PermissionScopePrefix + "openid",
						model.PermissionScopePrefix + "profile",
						model.PermissionScopePrefix + "email",
						model.PermissionScopePrefix + "offline_access",
					},
					RedirectURIs:           model.URIs{"http://localhost:3000/callback"},
					PostLogoutRedirectURIs: model.URIs{"http://localhost:3000/"},
				},
				{
					ClientID:     "oidc_client",
					ClientSecret: null.StringFrom(secret),
					ClientType:   model.ClientTypeConfidential,
					DisplayName:  "Sample Relying Party",
					ConsentType:  "explicit",
					Permissions: model.Permissions{
						model.PermissionGrantTypePrefix + "authorization_code",
						model.PermissionGrantTypePrefix + "refresh_token",
						model.PermissionGrantTypePrefix + "client_credentials",
						model.PermissionScopePrefix + "openid",
						model.PermissionScopePrefix + "profile",
						model.PermissionScopePrefix + "email",
					},
					RedirectURIs: model.URIs{"http://localhost:8080/auth/callback"},
				},
			}
			for _, app := range apps {
				if err := repo.CreateApplication(app); err != nil {
					if errors.Is(err, repository.ErrAlreadyExists) {
						logger.Sugar().Infof("application %s already exists, skipping", app.ClientID)
						continue
					}
					return err
				}
				logger.Sugar().Infof("created application %s", app.ClientID)
				if app.ClientSecret.Valid {
					fmt.Printf("client_id: %s\nclient_secret: %s\n", app.ClientID, app.ClientSecret.String)
				}
			}

			users := []repository.CreateUserArgs{
				{
					Name:          "admin",
					DisplayName:   "Administrator",
					Email:         "admin@example.com",
					EmailVerified: true,
				},
				{
					Name:          "demo",
					DisplayName:   "Demo User",
					Email:         "demo@example.com",
					EmailVerified: true,
					FamilyName:    "Demo",
					GivenName:     "Taro",
				},
			}
			for _, args := range users {
				if _, err := repo.CreateUser(args); err != nil {
					if errors.Is(err, repository.ErrAlreadyExists) {
						logger.Sugar().Infof("user %s already exists, skipping", args.Name)
						continue
					}
					return err
				}
				logger.Sugar().Infof("created user %s", args.Name)
			}
			return nil
		},
	}
}
