package gorm

import (
	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"github.com/leandro-lugaresi/hub"

	"github.com/traPtitech/oidp/event"
	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	"github.com/traPtitech/oidp/utils/gormutil"
)

// CreateUser implements UserRepository interface.
func (repo *Repository) CreateUser(args repository.CreateUserArgs) (*model.User, error) {
	if len(args.Name) == 0 {
		return nil, repository.ArgError("args.Name", "Name is required")
	}
	if len(args.Email) == 0 {
		return nil, repository.ArgError("args.Email", "Email is required")
	}

	user := &model.User{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          args.Name,
		DisplayName:   args.DisplayName,
		Email:         args.Email,
		EmailVerified: args.EmailVerified,
		FamilyName:    null.NewString(args.FamilyName, len(args.FamilyName) > 0),
		GivenName:     null.NewString(args.GivenName, len(args.GivenName) > 0),
		Picture:       null.NewString(args.Picture, len(args.Picture) > 0),
		Active:        true,
	}
	if err := repo.db.Create(user).Error; err != nil {
		if gormutil.IsMySQLDuplicatedRecordErr(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, err
	}
	repo.hub.Publish(hub.Message{
		Name: event.UserCreated,
		Fields: hub.Fields{
			"user_id": user.ID,
			"name":    user.Name,
		},
	})
	return user, nil
}

// GetUserByID implements UserRepository interface.
func (repo *Repository) GetUserByID(id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	user := &model.User{}
	if err := repo.db.Take(user, &model.User{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return user, nil
}

// GetUserByName implements UserRepository interface.
func (repo *Repository) GetUserByName(name string) (*model.User, error) {
	if len(name) == 0 {
		return nil, repository.ErrNotFound
	}
	user := &model.User{}
	if err := repo.db.Take(user, &model.User{Name: name}).Error; err != nil {
		return nil, convertError(err)
	}
	return user, nil
}
