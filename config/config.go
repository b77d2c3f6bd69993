// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	MakeAdmin = pflag.String("make-admin", "", "Promotes the user with this email to admin and exits")

	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvironments = []string{"development", "production"}
	validHashAlgs     = []string{"bcrypt", "argon2id"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	bindEnv()
	SetDefaults()

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		fmt.Println("[INFO]: No config.toml found, using environment variables and defaults")
	}

	if v.GetString("security.jwt_secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if err := Validate(); err != nil {
		return err
	}

	if !v.GetBool("security.turnstile.enabled") {
		fmt.Println("[WARNING]: Cloudflare's turnstile is disabled. Sign up and password reset won't be guarded against bots")
	}

	return nil
}

func bindEnv() {
	v.AutomaticEnv()

	for _, key := range []string{
		"app.log_level",
		"app.environment",

		"host.port",
		"host.public_url",
		"host.cors",
		"host.ssl.enabled",
		"host.ssl.certificate_path",
		"host.ssl.certificate_key_path",

		"security.jwt_secret",
		"security.hash_algorithm",
		"security.rate_limit",
		"security.turnstile.enabled",
		"security.turnstile.secret_token",

		"storage.data_dir",

		"mail.host",
		"mail.port",
		"mail.username",
		"mail.password",
		"mail.sender_address",

		"images.enabled",
		"images.bucket",
		"images.region",
		"images.access_key_id",
		"images.secret_access_key",
		"images.endpoint",
		"images.public_url",
		"images.max_size",
	} {
		v.BindEnv(key, envName(key))
	}
}

// envName maps host.ssl.enabled to HOST_SSL_ENABLED
func envName(key string) string {
	b := []byte(key)
	for i, c := range b {
		switch {
		case c == '.':
			b[i] = '_'
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// SetDefaults is exported so tests can start from a known config
func SetDefaults() {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.environment", "development")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.public_url", "http://localhost:3000")
	v.SetDefault("host.cors", []string{"http://localhost:3000"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("security.hash_algorithm", "bcrypt")
	v.SetDefault("security.rate_limit", 20)
	v.SetDefault("security.turnstile.enabled", false)

	v.SetDefault("storage.data_dir", "./data")

	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.sender_address", "noreply@storefront.local")

	v.SetDefault("images.enabled", false)
	v.SetDefault("images.max_size", 5)
}

// Validate checks the loaded values and returns the first problem found
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validEnvironments, v.GetString("app.environment")) {
		return errors.New("app.environment must be development or production")
	}

	if v.GetInt("host.port") <= 0 || v.GetInt("host.port") > 65535 {
		return errors.New("invalid port provided")
	}

	if v.GetString("host.public_url") == "" {
		return errors.New("host.public_url can't be empty")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if len(v.GetString("security.jwt_secret")) < 32 {
		return errors.New("security.jwt_secret must be at least 32 characters long")
	}

	if !slices.Contains(validHashAlgs, v.GetString("security.hash_algorithm")) {
		return errors.New("security.hash_algorithm must be bcrypt or argon2id")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetBool("security.turnstile.enabled") && v.GetString("security.turnstile.secret_token") == "" {
		return errors.New("turnstile secret token is missing")
	}

	if v.GetString("storage.data_dir") == "" {
		return errors.New("storage.data_dir can't be empty")
	}

	if v.GetString("mail.host") != "" && v.GetInt("mail.port") <= 0 {
		return errors.New("invalid mail port provided")
	}

	if v.GetBool("images.enabled") {
		if v.GetString("images.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
		if v.GetString("images.access_key_id") == "" {
			return errors.New("images access key id can't be empty")
		}
		if v.GetString("images.secret_access_key") == "" {
			return errors.New("images secret access key can't be empty")
		}
		if v.GetString("images.public_url") == "" {
			return errors.New("images.public_url can't be empty")
		}
		if v.GetInt("images.max_size") <= 0 {
			return errors.New("images.max_size must be bigger than 0")
		}
	}

	return nil
}

// Production reports whether the app runs in production mode
func Production() bool {
	return v.GetString("app.environment") == "production"
}

// SecureCookies reports whether cookies should carry the Secure flag
func SecureCookies() bool {
	return Production() || v.GetBool("host.ssl.enabled")
}
