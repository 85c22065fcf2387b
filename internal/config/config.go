// Package config resolves the harness configuration from environment
// variables, an optional config file and literal defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration record. It is a value type; treat
// it as read-only once loaded.
type Config struct {
	API       APIConfig       `mapstructure:"api"        json:"api"        yaml:"api"`
	Auth      AuthConfig      `mapstructure:"auth"       json:"auth"       yaml:"auth"`
	TestData  TestDataConfig  `mapstructure:"test_data"  json:"test_data"  yaml:"test_data"`
	Endpoints EndpointsConfig `mapstructure:"endpoints"  json:"endpoints"  yaml:"endpoints"`
	Log       LogConfig       `mapstructure:"log"        json:"log"        yaml:"log"`
}

// APIConfig locates the server under test.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	// Timeout is in milliseconds.
	Timeout int `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// TimeoutDuration converts Timeout to a duration. Non-positive values fall
// back to the default so a request can never wait forever.
func (a APIConfig) TimeoutDuration() time.Duration {
	if a.Timeout <= 0 {
		return time.Duration(constants.DefaultTimeoutMillis) * time.Millisecond
	}

	return time.Duration(a.Timeout) * time.Millisecond
}

// Credentials is an email/password pair.
type Credentials struct {
	Email    string `mapstructure:"email"    json:"email"    yaml:"email"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
}

// AuthConfig holds the pre-provisioned accounts.
type AuthConfig struct {
	Admin Credentials `mapstructure:"admin" json:"admin" yaml:"admin"`
	User  Credentials `mapstructure:"user"  json:"user"  yaml:"user"`
}

// NewUserTemplate is the profile used by the test-user factory.
type NewUserTemplate struct {
	Email       string `mapstructure:"email"        json:"email"        yaml:"email"`
	Password    string `mapstructure:"password"     json:"password"     yaml:"password"`
	FirstName   string `mapstructure:"first_name"   json:"first_name"   yaml:"first_name"`
	LastName    string `mapstructure:"last_name"    json:"last_name"    yaml:"last_name"`
	PhoneNumber string `mapstructure:"phone_number" json:"phone_number" yaml:"phone_number"`
	Address     string `mapstructure:"address"      json:"address"      yaml:"address"`
}

// TestDataConfig holds fixtures for generated data.
type TestDataConfig struct {
	NewUser NewUserTemplate `mapstructure:"new_user" json:"new_user" yaml:"new_user"`
}

// AuthEndpoints are the authentication paths.
type AuthEndpoints struct {
	Signup string `mapstructure:"signup" json:"signup" yaml:"signup"`
	Signin string `mapstructure:"signin" json:"signin" yaml:"signin"`
}

// AdminEndpoints are the moderation paths.
type AdminEndpoints struct {
	Users   string `mapstructure:"users"   json:"users"   yaml:"users"`
	Items   string `mapstructure:"items"   json:"items"   yaml:"items"`
	Reports string `mapstructure:"reports" json:"reports" yaml:"reports"`
}

// EndpointsConfig maps logical endpoint names to paths.
type EndpointsConfig struct {
	Auth       AuthEndpoints  `mapstructure:"auth"        json:"auth"        yaml:"auth"`
	Admin      AdminEndpoints `mapstructure:"admin"       json:"admin"       yaml:"admin"`
	LostItems  string         `mapstructure:"lost_items"  json:"lost_items"  yaml:"lost_items"`
	FoundItems string         `mapstructure:"found_items" json:"found_items" yaml:"found_items"`
}

// LostItem returns the path of a single lost item.
func (e EndpointsConfig) LostItem(id int64) string {
	return fmt.Sprintf("%s/%d", e.LostItems, id)
}

// FoundItem returns the path of a single found item.
func (e EndpointsConfig) FoundItem(id int64) string {
	return fmt.Sprintf("%s/%d", e.FoundItems, id)
}

// AdminUser returns the moderation path of a user.
func (e EndpointsConfig) AdminUser(id int64) string {
	return fmt.Sprintf("%s/%d", e.Admin.Users, id)
}

// AdminItem returns the moderation path of an item.
func (e EndpointsConfig) AdminItem(id int64) string {
	return fmt.Sprintf("%s/%d", e.Admin.Items, id)
}

// LogConfig controls console output.
type LogConfig struct {
	Level   string `mapstructure:"level"    json:"level"    yaml:"level"`
	NoColor bool   `mapstructure:"no_color" json:"no_color" yaml:"no_color"`
}

// Environment variables bound to configuration keys.
var envBindings = map[string]string{
	"api.base_url":        "API_BASE_URL",
	"api.timeout":         "API_TIMEOUT",
	"auth.admin.email":    "ADMIN_EMAIL",
	"auth.admin.password": "ADMIN_PASSWORD",
	"auth.user.email":     "TEST_USER_EMAIL",
	"auth.user.password":  "TEST_USER_PASSWORD",
	"log.level":           "LOG_LEVEL",
}

// SetDefaults registers the literal fallbacks on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", constants.DefaultBaseURL)
	v.SetDefault("api.timeout", constants.DefaultTimeoutMillis)

	v.SetDefault("auth.admin.email", "admin@lostfound.com")
	v.SetDefault("auth.admin.password", "AdminPass123!")
	v.SetDefault("auth.user.email", "testuser@example.com")
	v.SetDefault("auth.user.password", "password123")

	v.SetDefault("test_data.new_user.email",
		fmt.Sprintf("%s-%d@%s", constants.TestEmailPrefix, time.Now().UnixMilli(), constants.TestEmailDomain))
	v.SetDefault("test_data.new_user.password", "TestPass123!")
	v.SetDefault("test_data.new_user.first_name", "Test")
	v.SetDefault("test_data.new_user.last_name", "User")
	v.SetDefault("test_data.new_user.phone_number", "1234567890")
	v.SetDefault("test_data.new_user.address", "123 Test St, Test City")

	v.SetDefault("endpoints.auth.signup", "/api/v1/auth/signup")
	v.SetDefault("endpoints.auth.signin", "/api/v1/auth/signin")
	v.SetDefault("endpoints.admin.users", "/api/v1/admin/users")
	v.SetDefault("endpoints.admin.items", "/api/v1/admin/items")
	v.SetDefault("endpoints.admin.reports", "/api/v1/admin/reports")
	v.SetDefault("endpoints.lost_items", "/api/v1/lost-items")
	v.SetDefault("endpoints.found_items", "/api/v1/found-items")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.no_color", os.Getenv("NO_COLOR") != "")
}

// BindEnv binds the documented environment variables on v.
func BindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		err := v.BindEnv(key, env)
		if err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return nil
}

// Load builds a configuration from the environment and defaults.
func Load() (Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom registers defaults and environment bindings on v, then decodes
// everything v knows about (flags, config file) into a Config.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	err := BindEnv(v)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return cfg, nil
}

var (
	globalOnce sync.Once
	globalCfg  Config
	globalErr  error
)

// Global returns the configuration resolved once for this process.
func Global() (Config, error) {
	globalOnce.Do(func() {
		globalCfg, globalErr = Load()
	})

	return globalCfg, globalErr
}

// Redacted returns a copy with every password masked.
func (c Config) Redacted() Config {
	out := c
	out.Auth.Admin.Password = mask(c.Auth.Admin.Password)
	out.Auth.User.Password = mask(c.Auth.User.Password)
	out.TestData.NewUser.Password = mask(c.TestData.NewUser.Password)

	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}
