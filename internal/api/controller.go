package api

import (
	"context"
	"errors"
	"unicode"

	"github.com/ghaggin/portal/internal/model"
	"github.com/ghaggin/portal/internal/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrWeakPassword   = errors.New("did not meet password requirements")
	ErrBadCredentials = errors.New("incorrect username or password")
)

const minPasswordLen = 8

type Controller struct {
	repo repository.Repository
	log  *zap.Logger
}

type ControllerParams struct {
	fx.In

	Logger *zap.Logger
	Repo   repository.Repository
}

func NewController(p ControllerParams) (*Controller, error) {
	return &Controller{
		log:  p.Logger,
		repo: p.Repo,
	}, nil
}

func (c *Controller) ValidateLogin(ctx context.Context, username string, password string) error {
	u, err := c.repo.GetUserByName(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBadCredentials
	}
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return ErrBadCredentials
	}

	return nil
}

func (c *Controller) CreateUser(ctx context.Context, s model.Signup) (*model.User, error) {
	if s.Username == "" || s.Password == "" || s.Email == "" {
		return nil, ErrInvalidInput
	}

	if _, err := c.repo.GetUserByName(ctx, s.Username); err == nil {
		return nil, repository.ErrExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if !CheckPassword(s.Password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username: s.Username,
		Password: string(hash),
		Email:    s.Email,
	}
	if err := c.repo.AddUser(ctx, u); err != nil {
		return nil, err
	}

	c.log.Info("created user", zap.String("username", u.Username), zap.Int("id", u.ID))
	return u, nil
}

func (c *Controller) GetUser(ctx context.Context, username string) (*model.User, error) {
	return c.repo.GetUserByName(ctx, username)
}

// CheckPassword wants a lower and an upper case letter, a trailing numeric rune
// and at least minPasswordLen characters.
func CheckPassword(pw string) bool {
	runes := []rune(pw)
	if len(runes) < minPasswordLen {
		return false
	}

	var lower, upper bool
	for _, r := range runes {
		lower = lower || unicode.IsLower(r)
		upper = upper || unicode.IsUpper(r)
	}

	return lower && upper && unicode.IsNumber(runes[len(runes)-1])
}
