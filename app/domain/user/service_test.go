package user_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/infrastructure/database"
	"docurio.ai/docurio-client/app/infrastructure/database/repository/userrepo"
)

func newUserService(t *testing.T) *user.UserService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, model := range database.SchemaRegistry {
		require.NoError(t, db.AutoMigrate(model))
	}
	return user.NewService(userrepo.NewUserGormRepository(db), id.NewIDService())
}

func TestRegisterUserFillsDefaults(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, &user.User{
		Name:  "Ada",
		Email: "ada@example.com",
	}, "hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(registered.ID, "user_"))
	assert.Equal(t, user.RoleUser, registered.Role)
	assert.Equal(t, user.PlanFree, registered.Plan)
	assert.True(t, registered.Enabled)
	assert.False(t, registered.Guest)
	assert.False(t, registered.IsAdmin())
}

func TestRegisterGuest(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	guest, err := svc.RegisterGuest(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(guest.ID, "guest_"))
	assert.True(t, guest.Guest)
	assert.True(t, guest.Enabled)
	assert.True(t, strings.HasSuffix(guest.Email, "@guest.docurio.ai"))

	// Guests have no password, so the login form can never reach them.
	authed, err := svc.Authenticate(ctx, guest.Email, "")
	require.NoError(t, err)
	assert.Nil(t, authed)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, &user.User{
		Name:  "Ada",
		Email: "ada@example.com",
	}, "hunter22")
	require.NoError(t, err)

	authed, err := svc.Authenticate(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, authed)
	assert.Equal(t, registered.ID, authed.ID)

	authed, err = svc.Authenticate(ctx, "ada@example.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, authed)

	authed, err = svc.Authenticate(ctx, "nobody@example.com", "hunter22")
	require.NoError(t, err)
	assert.Nil(t, authed)
}

func TestAuthenticateRejectsDisabledAccounts(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, &user.User{
		Name:  "Ada",
		Email: "ada@example.com",
	}, "hunter22")
	require.NoError(t, err)

	disabled := false
	_, err = svc.Update(ctx, registered.ID, user.Patch{Enabled: &disabled})
	require.NoError(t, err)

	authed, err := svc.Authenticate(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Nil(t, authed)
}

func TestAuthenticateRejectsPasswordlessAccounts(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	// Accounts registered through the identity provider carry no hash.
	_, err := svc.RegisterUser(ctx, &user.User{
		Name:  "Ada",
		Email: "ada@example.com",
	}, "")
	require.NoError(t, err)

	authed, err := svc.Authenticate(ctx, "ada@example.com", "")
	require.NoError(t, err)
	assert.Nil(t, authed)
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, &user.User{
		Name:  "Ada",
		Email: "ada@example.com",
	}, "hunter22")
	require.NoError(t, err)

	promote := true
	pro := user.PlanPro
	updated, err := svc.Update(ctx, registered.ID, user.Patch{IsAdmin: &promote, Plan: &pro})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, user.RoleAdmin, updated.Role)
	assert.Equal(t, user.PlanPro, updated.Plan)
	assert.True(t, updated.Enabled)

	demote := false
	updated, err = svc.Update(ctx, registered.ID, user.Patch{IsAdmin: &demote})
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, updated.Role)
	assert.Equal(t, user.PlanPro, updated.Plan)

	missing, err := svc.Update(ctx, "user_gone", user.Patch{IsAdmin: &promote})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListFiltersGuests(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.RegisterUser(ctx, &user.User{Name: "n", Email: email}, "pw")
		require.NoError(t, err)
	}
	_, err := svc.RegisterGuest(ctx)
	require.NoError(t, err)

	registeredOnly := false
	page, err := svc.List(ctx, user.UserFilter{Guest: &registeredOnly}, &query.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Users, 2)

	page, err = svc.List(ctx, user.UserFilter{}, &query.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}
