package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/larkwiki/larkwiki/internal/logger"
	"github.com/larkwiki/larkwiki/wiki"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configFilename = "config.yaml"
const secretFilename = ".cookiesecret.yaml"

// SetupConfig loads file-based configuration. A missing config file is
// written out with defaults. The cookie secret lives in its own file so the
// main config stays safe to share.
func SetupConfig() *wiki.Config {
	viper.SetDefault("dbfile", "larkwiki.db")
	viper.SetDefault("host", "0.0.0.0:8080")
	viper.SetDefault("log_format", "pretty") // pretty, json, or text
	viper.SetDefault("log_level", "info")    // debug, info, warn, error
	viper.SetDefault("base_url", "http://localhost:8080")
	viper.SetDefault("review_limit", 20)
	viper.SetDefault("cookie_expiry", 86400*7)
	viper.SetDefault("minimum_password_length", 8)

	viper.SetConfigFile(configFilename)
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()

	createDefaultConfigFile := false

	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			createDefaultConfigFile = true
		} else {
			slog.Error("failed to read config", "error", err)
			os.Exit(1)
		}
	}

	// Initialize logger with configured format and level
	logger.InitLogger(
		logger.ParseLogFormat(viper.GetString("log_format")),
		logger.ParseLogLevel(viper.GetString("log_level")),
	)

	config := &wiki.Config{
		DatabaseFile:          viper.GetString("dbfile"),
		Host:                  viper.GetString("host"),
		BaseURL:               viper.GetString("base_url"),
		LogFormat:             viper.GetString("log_format"),
		LogLevel:              viper.GetString("log_level"),
		ReviewLimit:           viper.GetInt("review_limit"),
		CookieExpiry:          viper.GetInt("cookie_expiry"),
		MinimumPasswordLength: viper.GetInt("minimum_password_length"),
	}

	if createDefaultConfigFile {
		slog.Info("config not found, writing defaults", "file", configFilename)
		conf, err := os.Create(configFilename)
		if err != nil {
			slog.Error("failed to create config file", "error", err)
			os.Exit(1)
		}

		if err := yaml.NewEncoder(conf).Encode(config); err != nil {
			slog.Error("failed to write config file", "error", err)
			os.Exit(1)
		}
	}

	config.CookieSecret = loadCookieSecret()

	return config
}

// cookieSecretFile is the on-disk shape of the cookie secret.
type cookieSecretFile struct {
	Secret []byte `yaml:"secret"`
}

// loadCookieSecret reads the session signing secret, generating and
// persisting a fresh one on first run.
func loadCookieSecret() []byte {
	raw, err := os.ReadFile(secretFilename)
	if err == nil {
		var sf cookieSecretFile
		if err := yaml.Unmarshal(raw, &sf); err == nil && len(sf.Secret) > 0 {
			return sf.Secret
		}
		slog.Warn("cookie secret file unreadable, regenerating", "file", secretFilename)
	}

	secret := securecookie.GenerateRandomKey(32)
	if secret == nil {
		slog.Error("failed to generate cookie secret")
		os.Exit(1)
	}

	out, err := yaml.Marshal(cookieSecretFile{Secret: secret})
	if err == nil {
		err = os.WriteFile(secretFilename, out, 0600)
	}
	if err != nil {
		slog.Error("failed to persist cookie secret", "file", secretFilename, "error", err)
		os.Exit(1)
	}

	slog.Info("generated new cookie secret", "file", secretFilename)
	return secret
}
