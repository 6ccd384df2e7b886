package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Stub    StubConfig    `yaml:"stub"`
}

type APIConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	UploadTimeout   time.Duration `yaml:"upload_timeout"`
	AnalysisTimeout time.Duration `yaml:"analysis_timeout"`
}

type SessionConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StubConfig configures the local stub server run by the `stub` subcommand.
type StubConfig struct {
	Port             int           `yaml:"port"`
	JWTSecret        string        `yaml:"jwt_secret"`
	TokenExpireHours int           `yaml:"token_expire_hours"`
	RateLimit        int           `yaml:"rate_limit"`
	AnalysisDelay    time.Duration `yaml:"analysis_delay"`
	Minio            MinioConfig   `yaml:"minio"`
	Users            []StubUser    `yaml:"users"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type StubUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

// Load reads the YAML config at path and applies environment overrides. A
// missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	// Optional .env overlay; a missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("ADCU_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("ADCU_SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv("ADCU_JWT_SECRET"); v != "" {
		cfg.Stub.JWTSecret = v
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080/api"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.API.UploadTimeout == 0 {
		c.API.UploadTimeout = 120 * time.Second
	}
	if c.API.AnalysisTimeout == 0 {
		// Analysis jobs are documented to take 10-20 minutes
		c.API.AnalysisTimeout = 20 * time.Minute
	}
	if c.Session.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Session.Path = filepath.Join(home, ".adcu", "session.json")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Stub.Port == 0 {
		c.Stub.Port = 8080
	}
	if c.Stub.TokenExpireHours == 0 {
		c.Stub.TokenExpireHours = 24
	}
	if c.Stub.RateLimit == 0 {
		c.Stub.RateLimit = 100
	}
}
