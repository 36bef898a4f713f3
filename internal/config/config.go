package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	JWT struct {
		SecretKey      string        `mapstructure:"secret_key"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
		CookieName     string        `mapstructure:"cookie_name"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	App struct {
		Name           string `mapstructure:"name"`
		SeedCatalogs   bool   `mapstructure:"seed_catalogs"`
		DashboardLimit int    `mapstructure:"dashboard_limit"`
	} `mapstructure:"app"`
}

var Cfg Config

// LoadConfig reads configs/config.yaml plus SKYMENTOR_* environment
// overrides into Cfg.
func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SKYMENTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: config file not found, relying on defaults and environment")
		} else {
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		return err
	}

	if Cfg.Server.Port == "" {
		Cfg.Server.Port = ":8080"
	}
	if Cfg.App.Name == "" {
		Cfg.App.Name = "skymentor"
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		Cfg.JWT.AccessTokenTTL = 24 * time.Hour
	}
	if Cfg.JWT.CookieName == "" {
		Cfg.JWT.CookieName = "sky_session"
	}
	if Cfg.App.DashboardLimit <= 0 {
		Cfg.App.DashboardLimit = 20
	}
	if !viper.IsSet("app.seed_catalogs") {
		Cfg.App.SeedCatalogs = true
	}

	// The signing secret is injected configuration. Outside dev a
	// missing secret is a startup error, not a silent fallback.
	if Cfg.JWT.SecretKey == "" {
		if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
			log.Println("Warning: jwt.secret_key not set, using insecure dev default")
			Cfg.JWT.SecretKey = "dev-only-insecure-secret"
		} else {
			return errors.New("config: jwt.secret_key must be set")
		}
	}

	return nil
}
