package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
	// BaseURL is used to build absolute links in outbound emails
	// (verify, reset, invite, tracking).
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	TTL    int    `yaml:"ttl"` // minutes
}

type EmailConfig struct {
	Provider     string        `yaml:"provider"` // brevo, smtp
	APIKey       string        `yaml:"api_key"`  // For Brevo
	APIBaseURL   string        `yaml:"api_base_url"`
	SMTPHost     string        `yaml:"smtp_host"`
	SMTPPort     int           `yaml:"smtp_port"`
	SMTPUsername string        `yaml:"smtp_user"`
	SMTPPassword string        `yaml:"smtp_password"`
	FromEmail    string        `yaml:"from_email"`
	FromName     string        `yaml:"from_name"`
	Timeout      time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Type      string `yaml:"type"`       // local, s3
	BasePath  string `yaml:"base_path"`  // For local storage
	BaseURL   string `yaml:"base_url"`   // Public URL base
	Bucket    string `yaml:"bucket"`     // For S3-compatible stores
	Region    string `yaml:"region"`     // For S3
	AccessKey string `yaml:"access_key"` // For S3-compatible stores
	SecretKey string `yaml:"secret_key"` // For S3-compatible stores
	Endpoint  string `yaml:"endpoint"`   // Supabase / R2 / custom S3
}

type UploadConfig struct {
	MaxResumeSize int64 `yaml:"max_resume_size"` // bytes
}

type SecurityConfig struct {
	LoginRatePerMinute int `yaml:"login_rate_per_minute"`
}

type BootstrapConfig struct {
	SuperuserEmail    string `yaml:"superuser_email"`
	SuperuserPassword string `yaml:"superuser_password"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Email     EmailConfig     `yaml:"email"`
	Storage   StorageConfig   `yaml:"storage"`
	Upload    UploadConfig    `yaml:"upload"`
	Security  SecurityConfig  `yaml:"security"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case the
// whole configuration comes from environment variables (test/deploy mode).
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	} else {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.Server.BaseURL = os.Getenv("SERVER_BASE_URL")
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 60

		cfg.Email.Provider = "brevo"
		cfg.Email.APIKey = os.Getenv("BREVO_API_KEY")
		cfg.Email.FromEmail = os.Getenv("BREVO_SENDER_EMAIL")
		cfg.Email.FromName = os.Getenv("BREVO_SENDER_NAME")

		cfg.Storage.Type = os.Getenv("STORAGE_TYPE")
		cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
		cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")
		cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
		cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
		cfg.Storage.BaseURL = os.Getenv("STORAGE_BASE_URL")

		cfg.Bootstrap.SuperuserEmail = os.Getenv("SUPERUSER_EMAIL")
		cfg.Bootstrap.SuperuserPassword = os.Getenv("SUPERUSER_PASSWORD")
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:4000"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "brevo"
	}
	if cfg.Email.APIBaseURL == "" {
		cfg.Email.APIBaseURL = "https://api.brevo.com/v3/smtp/email"
	}
	if cfg.Email.Timeout == 0 {
		cfg.Email.Timeout = 10 * time.Second
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxResumeSize == 0 {
		cfg.Upload.MaxResumeSize = 5 * 1024 * 1024 // 5MB
	}
	if cfg.Security.LoginRatePerMinute == 0 {
		cfg.Security.LoginRatePerMinute = 5
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
