package users

import (
	"context"

	"github.com/google/uuid"

	"miniblog/internal/core"
	"miniblog/internal/persistence"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Create(ctx context.Context, user *core.User) error {
	err := r.DB.Conn(ctx).Create(user).Error
	return persistence.Translate(err, "user with nickname "+user.Nickname)
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (core.User, error) {
	var user core.User
	err := r.DB.Conn(ctx).Where("id = ?", id).Take(&user).Error
	return user, persistence.Translate(err, "user")
}

func (r *Repository) GetByNickname(ctx context.Context, nickname string) (core.User, error) {
	var user core.User
	err := r.DB.Conn(ctx).Where("nickname = ?", nickname).Take(&user).Error
	return user, persistence.Translate(err, "user "+nickname)
}

func (r *Repository) Update(ctx context.Context, user *core.User) error {
	err := r.DB.Conn(ctx).
		Model(&core.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":          user.Name,
			"password_hash": user.PasswordHash,
		}).Error
	return persistence.Translate(err, "user")
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.Conn(ctx).Where("id = ?", id).Delete(&core.User{}).Error
}
