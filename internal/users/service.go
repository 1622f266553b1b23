package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/internal/policy"
	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
	"github.com/parisy/pasarsayur-backend/pkg/security"
)

// Service exposes account management operations.
type Service interface {
	GetProfile(ctx context.Context, actor policy.Actor, id uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, actor policy.Actor, id uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	DeleteAccount(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	ListAccounts(ctx context.Context, actor policy.Actor) ([]UserDTO, error)
}

// UpdateProfileInput holds optional mutation values for an account. Absent
// fields are left untouched.
type UpdateProfileInput struct {
	Name     *string
	Address  *string
	Phone    *string
	Password *string
}

type accountStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role enums.Role) ([]models.User, error)
	ListBySubRole(ctx context.Context, subRole enums.SubRole) ([]models.User, error)
}

type service struct {
	repo        accountStore
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo        accountStore
	PasswordCfg config.PasswordConfig
}

// NewService constructs an account service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{
		repo:        params.Repo,
		passwordCfg: params.PasswordCfg,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, actor policy.Actor, id uuid.UUID) (*UserDTO, error) {
	if !actor.Is(id) && !actor.IsAdminTier() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot view another profile")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, actor policy.Actor, id uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	if !actor.Is(id) && actor.SubRole != enums.SubRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot edit another profile")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		fields["name"] = name
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteAccount(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !actor.Can(policy.PermAccountsDelete) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
	}
	if actor.Is(id) {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete own account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// ListAccounts applies the community-hierarchy visibility scope: the admin
// tier sees everyone, rw sees all user-role accounts, rt sees warga only.
func (s *service) ListAccounts(ctx context.Context, actor policy.Actor) ([]UserDTO, error) {
	var (
		list []UserDTO
		err  error
	)
	switch {
	case actor.IsAdminTier():
		var all []UserDTO
		all, err = s.listAll(ctx)
		list = all
	case actor.SubRole == enums.SubRoleRW:
		list, err = s.listByRole(ctx, enums.RoleUser)
	case actor.SubRole == enums.SubRoleRT:
		list, err = s.listBySubRole(ctx, enums.SubRoleWarga)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) listAll(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(list), nil
}

func (s *service) listByRole(ctx context.Context, role enums.Role) ([]UserDTO, error) {
	list, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(list), nil
}

func (s *service) listBySubRole(ctx context.Context, subRole enums.SubRole) ([]UserDTO, error) {
	list, err := s.repo.ListBySubRole(ctx, subRole)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(list), nil
}
