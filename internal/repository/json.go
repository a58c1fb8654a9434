package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ghaggin/portal/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	errTableFileIsDir = errors.New("table file is dir")
)

// record is the on-disk shape; model.User never serializes the hash.
type record struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type Data struct {
	Users []record `json:"users"`
}

type jsonRepo struct {
	path string
	log  *zap.Logger

	mu   sync.RWMutex
	data *Data
}

func NewJSON(p Params) (Repository, error) {
	r := newJSONRepo(p.Config.API.Repository.JSONPath, p.Log)

	err := r.readfile()
	if os.IsNotExist(err) {
		// first run, the file is created when the service is stopped
		r.log.Warn("json repo data file does not exist", zap.String("path", r.path))
	} else if err != nil {
		// refuse to start, stopping would overwrite the stored users
		return nil, fmt.Errorf("reading json repo data file %s: %w", r.path, err)
	}

	p.LC.Append(fx.Hook{
		OnStop: r.stop,
	})

	return r, nil
}

func newJSONRepo(path string, log *zap.Logger) *jsonRepo {
	return &jsonRepo{
		path: path,
		log:  log,
		data: &Data{},
	}
}

func (r *jsonRepo) stop(_ context.Context) error {
	return r.writefile()
}

func (r *jsonRepo) readfile() error {
	finfo, err := os.Stat(r.path)
	if err != nil {
		return err
	}

	if finfo.IsDir() {
		return errTableFileIsDir
	}

	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	return json.NewDecoder(f).Decode(&r.data)
}

func (r *jsonRepo) writefile() error {
	r.mu.RLock()
	b, err := json.MarshalIndent(r.data, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(r.path, b, 0o600)
}

func (r *jsonRepo) GetUserByName(_ context.Context, name string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.data.Users {
		if u.Username == name {
			return toUser(u), nil
		}
	}

	return nil, ErrNotFound
}

func (r *jsonRepo) AddUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.data.Users {
		if u.Username == user.Username {
			return ErrExists
		}
	}

	user.ID = 0
	l := len(r.data.Users)
	if l > 0 {
		user.ID = r.data.Users[l-1].ID + 1
	}

	r.data.Users = append(r.data.Users, record{
		ID:       user.ID,
		Username: user.Username,
		Password: user.Password,
		Email:    user.Email,
	})
	return nil
}

func toUser(r record) *model.User {
	return &model.User{
		ID:       r.ID,
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
	}
}
