package repository

import (
	"context"
	"fmt"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrRoleNotFound    = dao.ErrRoleNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindRoleByName(ctx context.Context, name string) (dao.Role, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create stores a new account with the given role names. Unknown role names
// surface as ErrRoleNotFound.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	roles := make([]dao.Role, 0, len(user.Roles))
	for _, name := range user.Roles {
		role, err := r.dao.FindRoleByName(ctx, string(name))
		if err != nil {
			return domain.User{}, fmt.Errorf("r.dao.FindRoleByName -> %w", err)
		}

		roles = append(roles, role)
	}

	created, err := r.dao.Insert(ctx, dao.User{
		Email:            user.Email,
		Password:         user.Password,
		Name:             user.Name,
		Surnames:         user.Surnames,
		Enabled:          user.Enabled,
		RegistrationDate: user.RegistrationDate,
		Roles:            roles,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.dao.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsByEmail -> %w", err)
	}

	return exists, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	roles := make([]domain.RoleType, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, domain.RoleType(role.Name))
	}

	return domain.User{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Surnames:         u.Surnames,
		Password:         u.Password,
		Enabled:          u.Enabled,
		RegistrationDate: u.RegistrationDate,
		Roles:            roles,
	}
}
