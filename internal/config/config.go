package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
	// Unscoped restores the historical behavior where id-list reads and
	// deletes are not filtered by owner. Off by default.
	Unscoped bool `yaml:"unscoped"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"-"` // from DATABASE_URL
	} `yaml:"-"`
	Auth struct {
		SecretKey string `yaml:"-"` // from SECRET_KEY
	} `yaml:"-"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Files FilesConfig `yaml:"files"`
}

// LoadConfig reads config/config.yaml and the required environment values.
// Missing configuration is fatal at startup, never a per-request error.
func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	cfg.Auth.SecretKey = mustEnv("SECRET_KEY")
	cfg.Database.DSN = mustEnv("DATABASE_URL")

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./uploads"
	}
	return &cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("required environment variable " + key + " is not set")
	}
	return v
}
