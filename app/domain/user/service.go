package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/utils/functional"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// UserFilter narrows repository lookups. Nil fields match everything.
type UserFilter struct {
	Email   *string
	Role    *Role
	Guest   *bool
	Enabled *bool
}

type UserRepository interface {
	Create(ctx context.Context, u *User, passwordHash string) error
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	FindByFilter(ctx context.Context, filter UserFilter, pagination *query.Pagination) ([]*User, error)
	CountByFilter(ctx context.Context, filter UserFilter) (int64, error)
	Update(ctx context.Context, u *User) error
	PasswordHashByEmail(ctx context.Context, email string) (string, error)
}

type UserService struct {
	userrepo  UserRepository
	idService *id.IDService
}

func NewService(userrepo UserRepository, idService *id.IDService) *UserService {
	return &UserService{
		userrepo:  userrepo,
		idService: idService,
	}
}

// RegisterUser creates a registered account. The password may be empty for
// accounts that only ever sign in through the identity provider.
func (s *UserService) RegisterUser(ctx context.Context, user *User, password string) (*User, error) {
	publicId, err := s.idService.GenerateUserID()
	if err != nil {
		return nil, err
	}
	user.ID = publicId
	if user.Role == "" {
		user.Role = RoleUser
	}
	if user.Plan == "" {
		user.Plan = PlanFree
	}
	user.Enabled = true
	user.CreatedAt = time.Now().Unix()

	passwordHash := ""
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hashed)
	}
	if err := s.userrepo.Create(ctx, user, passwordHash); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterGuest creates an anonymous account so visitors can submit a few
// jobs before signing up. Guests never have a password.
func (s *UserService) RegisterGuest(ctx context.Context) (*User, error) {
	publicId, err := s.idService.GenerateGuestID()
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:        publicId,
		Name:      fmt.Sprintf("Guest-%s", uuid.NewString()[:8]),
		Email:     fmt.Sprintf("%s@guest.docurio.ai", uuid.NewString()),
		Role:      RoleUser,
		Plan:      PlanFree,
		Guest:     true,
		Enabled:   true,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.userrepo.Create(ctx, user, ""); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks an email and password pair. A nil user with a nil
// error means the credentials did not match; callers must not learn which
// half was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Enabled {
		return nil, nil
	}
	hash, err := s.userrepo.PasswordHashByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if hash == "" {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*User, error) {
	users, err := s.userrepo.FindByFilter(ctx, UserFilter{
		Email: &email,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	if len(users) != 1 {
		return nil, fmt.Errorf("invalid email")
	}
	return users[0], nil
}

func (s *UserService) FindByPublicID(ctx context.Context, publicID string) (*User, error) {
	return s.userrepo.FindByPublicID(ctx, publicID)
}

// List returns one page of accounts for the admin console.
func (s *UserService) List(ctx context.Context, filter UserFilter, pagination *query.Pagination) (*Page, error) {
	users, err := s.userrepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	total, err := s.userrepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Page{
		Users:    functional.Deref(users),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}, nil
}

// Patch carries the admin-editable account fields. Nil leaves a field as is.
type Patch struct {
	IsAdmin *bool
	Plan    *string
	Enabled *bool
}

// Update applies a patch to an account and returns the updated user.
func (s *UserService) Update(ctx context.Context, publicID string, patch Patch) (*User, error) {
	user, err := s.userrepo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if patch.IsAdmin != nil {
		if *patch.IsAdmin {
			user.Role = RoleAdmin
		} else {
			user.Role = RoleUser
		}
	}
	if patch.Plan != nil {
		user.Plan = *patch.Plan
	}
	if patch.Enabled != nil {
		user.Enabled = *patch.Enabled
	}
	if err := s.userrepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) CountByFilter(ctx context.Context, filter UserFilter) (int64, error) {
	return s.userrepo.CountByFilter(ctx, filter)
}
