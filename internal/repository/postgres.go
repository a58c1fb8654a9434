package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ghaggin/portal/internal/model"
	"github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewPostgres(p Params) (Repository, error) {
	db, err := sql.Open("postgres", p.Config.API.Repository.PostgresDSN)
	if err != nil {
		return nil, err
	}

	r := newPostgresRepo(db, p.Log)

	p.LC.Append(fx.Hook{
		OnStart: r.migrate,
		OnStop: func(_ context.Context) error {
			return r.db.Close()
		},
	})

	return r, nil
}

func newPostgresRepo(db *sql.DB, log *zap.Logger) *postgresRepo {
	return &postgresRepo{db: db, log: log}
}

func (r *postgresRepo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS users (
		id       SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email    TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		r.log.Error("failed migrating users table", zap.Error(err))
	}
	return err
}

func (r *postgresRepo) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(
		ctx,
		`SELECT id, username, password, email FROM users WHERE username = $1`,
		name,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *postgresRepo) AddUser(ctx context.Context, user *model.User) error {
	err := r.db.QueryRowContext(
		ctx,
		`INSERT INTO users (username, password, email) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.Password, user.Email,
	).Scan(&user.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrExists
	}
	return err
}
