package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *DbConfig
	Service  *SvcConfig
}

type DbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"watchair"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type SvcConfig struct {
	Address         string   `envconfig:"WATCHAIR_ADDRESS" default:":42525"`
	MetricsAddress  string   `envconfig:"WATCHAIR_METRICS_ADDRESS" default:":8080"`
	LogLevel        string   `envconfig:"WATCHAIR_LOG_LEVEL" default:"info"`
	LogFormat       string   `envconfig:"WATCHAIR_LOG_FORMAT" default:"console"`
	MigrationFolder string   `envconfig:"WATCHAIR_MIGRATIONS_FOLDER" default:""`
	AllowedOrigins  []string `envconfig:"WATCHAIR_ALLOWED_ORIGINS" default:"*"`
	Jobs            JobsConfig
	Storage         StorageConfig
}

type JobsConfig struct {
	// MaxConcurrent bounds the number of pipelines running at once. Zero means unbounded.
	MaxConcurrent          int64 `envconfig:"WATCHAIR_MAX_CONCURRENT_JOBS" default:"0"`
	TransactionalIngestion bool  `envconfig:"WATCHAIR_INGESTION_TRANSACTIONAL" default:"false"`
}

type StorageConfig struct {
	Type         string `envconfig:"WATCHAIR_STORAGE_TYPE" default:"local"`
	UploadFolder string `envconfig:"WATCHAIR_UPLOAD_FOLDER" default:"data/uploads"`
	Endpoint     string `envconfig:"WATCHAIR_S3_ENDPOINT" default:""`
	Bucket       string `envconfig:"WATCHAIR_S3_BUCKET" default:"watchair-uploads"`
	AccessKey    string `envconfig:"WATCHAIR_S3_ACCESS_KEY" default:""`
	SecretKey    string `envconfig:"WATCHAIR_S3_SECRET_KEY" default:""`
	UseSSL       bool   `envconfig:"WATCHAIR_S3_USE_SSL" default:"false"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		_ = godotenv.Load()
		cfg := new(Config)
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns a configuration backed by an in-memory sqlite database and a local upload folder.
func NewDefault() *Config {
	return &Config{
		Database: &DbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared&_foreign_keys=1",
		},
		Service: &SvcConfig{
			Address:        ":42525",
			MetricsAddress: ":8080",
			LogLevel:       "info",
			LogFormat:      "console",
			AllowedOrigins: []string{"*"},
			Storage: StorageConfig{
				Type:         "local",
				UploadFolder: "data/uploads",
			},
		},
	}
}
