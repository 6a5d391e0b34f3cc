package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Data      DataConfig      `mapstructure:"data"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DataConfig 平面文件持久化目录及各实体数据文件
type DataConfig struct {
	Dir           string `mapstructure:"dir"`
	ClientsFile   string `mapstructure:"clients_file"`
	UsersFile     string `mapstructure:"users_file"`
	TutorsFile    string `mapstructure:"tutors_file"`
	ModelsFile    string `mapstructure:"models_file"`
	SessionsFile  string `mapstructure:"sessions_file"`
	MaterialsFile string `mapstructure:"materials_file"`
	ReportsDir    string `mapstructure:"reports_dir"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("AI_TUTOR_CRM")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Data
	viper.BindEnv("data.dir", "DATA_DIR")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	if cfg.Data.Dir != "" {
		if _, err := os.Stat(cfg.Data.Dir); os.IsNotExist(err) {
			os.MkdirAll(cfg.Data.Dir, 0755)
		}
	}

	return &cfg, nil
}

// ClientsPath 等方法把数据目录与文件名拼成完整路径，未配置时给默认值
func (d DataConfig) ClientsPath() string   { return d.join(d.ClientsFile, "clients.txt") }
func (d DataConfig) UsersPath() string     { return d.join(d.UsersFile, "users.jsonl") }
func (d DataConfig) TutorsPath() string    { return d.join(d.TutorsFile, "tutors.jsonl") }
func (d DataConfig) ModelsPath() string    { return d.join(d.ModelsFile, "models.jsonl") }
func (d DataConfig) SessionsPath() string  { return d.join(d.SessionsFile, "sessions.jsonl") }
func (d DataConfig) MaterialsPath() string { return d.join(d.MaterialsFile, "materials.jsonl") }

func (d DataConfig) ReportsPath() string {
	if d.ReportsDir != "" {
		return d.ReportsDir
	}
	return d.join("", "reports")
}

func (d DataConfig) join(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	dir := d.Dir
	if dir == "" {
		dir = "data"
	}
	return dir + string(os.PathSeparator) + name
}
