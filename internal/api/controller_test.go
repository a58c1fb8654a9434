package api

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/model"
	"github.com/ghaggin/portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	c := config.Default()
	c.API.JWTSecret = "test-secret"
	c.API.Repository.JSONPath = filepath.Join(t.TempDir(), "users.json")
	return c
}

func testController(t *testing.T, c *config.Config) *Controller {
	t.Helper()

	repo, err := repository.New(repository.Params{
		LC:     fxtest.NewLifecycle(t),
		Config: c,
		Log:    zap.NewNop(),
	})
	require.Nil(t, err)

	ctrl, err := NewController(ControllerParams{Logger: zap.NewNop(), Repo: repo})
	require.Nil(t, err)
	return ctrl
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		pw   string
		want bool
	}{
		{"Passw0rd9", true},
		{"aB345678", true},
		{"passw0rd9", false}, // no upper
		{"PASSW0RD9", false}, // no lower
		{"Password", false},  // no trailing digit
		{"Pa1", false},       // too short
		{"Passwor½", true},   // numeric, not a decimal digit
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.pw))
		})
	}
}

func TestController_CreateUserAndLogin(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	ctrl := testController(t, testConfig(t))

	u, err := ctrl.CreateUser(ctx, model.Signup{Username: "alice", Password: "Secret123", Email: "a@example.com"})
	require.Nil(err)
	assert.NotEqual("Secret123", u.Password)

	assert.Nil(ctrl.ValidateLogin(ctx, "alice", "Secret123"))
	assert.ErrorIs(ctrl.ValidateLogin(ctx, "alice", "Secret124"), ErrBadCredentials)
	assert.ErrorIs(ctrl.ValidateLogin(ctx, "bob", "Secret123"), ErrBadCredentials)

	got, err := ctrl.GetUser(ctx, "alice")
	require.Nil(err)
	assert.Equal("a@example.com", got.Email)
}

func TestController_CreateUser_rejects(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	ctrl := testController(t, testConfig(t))
	_, err := ctrl.CreateUser(ctx, model.Signup{Username: "alice", Password: "Secret123", Email: "a@example.com"})
	require.Nil(t, err)

	_, err = ctrl.CreateUser(ctx, model.Signup{Username: "bob", Password: "Secret123"})
	assert.ErrorIs(err, ErrInvalidInput)

	_, err = ctrl.CreateUser(ctx, model.Signup{Username: "alice", Password: "Secret123", Email: "x@example.com"})
	assert.ErrorIs(err, repository.ErrExists)

	_, err = ctrl.CreateUser(ctx, model.Signup{Username: "bob", Password: "secret", Email: "b@example.com"})
	assert.ErrorIs(err, ErrWeakPassword)
}
