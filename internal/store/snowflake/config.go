package snowflake

import (
	"strings"

	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/validator"
)

// authenticator modes that require a browser round-trip and can never work
// on this headless fetch path
const authExternalBrowser = "EXTERNALBROWSER"

var defaultExcludedSchemas = []string{"INFORMATION_SCHEMA", "PUBLIC"}

type Config struct {
	Enabled       bool   `yaml:"enabled" mapstructure:"enabled" default:"false"`
	Account       string `yaml:"account" mapstructure:"account" validate:"required"`
	Username      string `yaml:"username" mapstructure:"username" validate:"required"`
	Password      string `yaml:"password" mapstructure:"password" validate:"required"`
	Warehouse     string `yaml:"warehouse" mapstructure:"warehouse" validate:"required"`
	Database      string `yaml:"database" mapstructure:"database" validate:"required"`
	Schema        string `yaml:"schema" mapstructure:"schema"`
	Role          string `yaml:"role" mapstructure:"role"`
	Region        string `yaml:"region" mapstructure:"region"`
	Authenticator string `yaml:"authenticator" mapstructure:"authenticator"`

	// ExcludedSchemas are filtered out of the catalog listing. Defaults to
	// the warehouse's own meta schemas.
	ExcludedSchemas []string `yaml:"excluded_schemas" mapstructure:"excluded_schemas"`
}

// Validate checks that every credential needed for a headless
// username/password connection is present and that the configured
// authenticator is usable without a browser.
func (c Config) Validate() error {
	if strings.EqualFold(c.Authenticator, authExternalBrowser) {
		return asset.UnsupportedAuthError{Authenticator: c.Authenticator}
	}
	if err := validator.ValidateStruct(c); err != nil {
		return asset.ConnectError{Err: err}
	}
	return nil
}

// effectiveRegion returns the region option, empty when the account
// identifier already embeds a region.
func (c Config) effectiveRegion() string {
	if c.Region == "" || strings.Contains(c.Account, ".") {
		return ""
	}
	if strings.EqualFold(c.Region, "global") {
		return ""
	}
	return strings.ToLower(c.Region)
}

func (c Config) excludedSchemas() []string {
	if len(c.ExcludedSchemas) == 0 {
		return defaultExcludedSchemas
	}
	return c.ExcludedSchemas
}
