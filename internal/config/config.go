package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Path of the yaml config file, empty means defaults only.
type Path string

type Config struct {
	Web Web `yaml:"web"`
	API API `yaml:"api"`
}

type Web struct {
	Port       int     `yaml:"port"`
	APIBaseURL string  `yaml:"api_base_url"`
	Session    Session `yaml:"session"`
}

type Session struct {
	Lifetime   time.Duration `yaml:"lifetime"`
	CookieName string        `yaml:"cookie_name"`
	Store      string        `yaml:"store"`
	Redis      Redis         `yaml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type API struct {
	Port           int           `yaml:"port"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Repository     Repository    `yaml:"repository"`
}

type Repository struct {
	Kind        string `yaml:"kind"`
	JSONPath    string `yaml:"json_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	RepositoryJSON     = "json"
	RepositoryPostgres = "postgres"
)

func Default() *Config {
	return &Config{
		Web: Web{
			Port:       8123,
			APIBaseURL: "http://localhost:5001/api",
			Session: Session{
				Lifetime:   30 * 24 * time.Hour,
				CookieName: "token",
				Store:      SessionStoreMemory,
			},
		},
		API: API{
			Port:           5001,
			TokenTTL:       24 * time.Hour,
			AllowedOrigins: []string{"http://localhost:8123"},
			Repository: Repository{
				Kind:     RepositoryJSON,
				JSONPath: "./data/users.json",
			},
		},
	}
}

// New loads the file at p on top of the defaults.
func New(p Path) (*Config, error) {
	c := Default()
	if p == "" {
		return c, nil
	}

	b, err := os.ReadFile(string(p))
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}
