package snowflake

import (
	"testing"

	"github.com/sextant-data/sextant/core/asset"
	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Enabled:   true,
		Account:   "xy12345",
		Username:  "catalog_reader",
		Password:  "secret",
		Warehouse: "COMPUTE_WH",
		Database:  "ANALYTICS",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("should pass for a complete username password config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("should reject browser auth before any dial", func(t *testing.T) {
		cfg := validConfig()
		cfg.Authenticator = "externalbrowser"

		err := cfg.Validate()
		assert.ErrorAs(t, err, &asset.UnsupportedAuthError{})
	})

	t.Run("should reject missing credentials as a connect error", func(t *testing.T) {
		cfg := validConfig()
		cfg.Password = ""

		err := cfg.Validate()
		assert.ErrorAs(t, err, &asset.ConnectError{})
	})
}

func TestConfig_EffectiveRegion(t *testing.T) {
	type testCase struct {
		Description string
		Account     string
		Region      string
		Expected    string
	}

	var testCases = []testCase{
		{
			Description: "should lowercase a plain region",
			Account:     "xy12345",
			Region:      "EU-WEST-1",
			Expected:    "eu-west-1",
		},
		{
			Description: "should drop the region when the account embeds one",
			Account:     "xy12345.eu-west-1",
			Region:      "eu-west-1",
			Expected:    "",
		},
		{
			Description: "should treat global as no region",
			Account:     "xy12345",
			Region:      "global",
			Expected:    "",
		},
		{
			Description: "should pass empty through",
			Account:     "xy12345",
			Region:      "",
			Expected:    "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			cfg := validConfig()
			cfg.Account = tc.Account
			cfg.Region = tc.Region
			assert.Equal(t, tc.Expected, cfg.effectiveRegion())
		})
	}
}

func TestConfig_ExcludedSchemas(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, []string{"INFORMATION_SCHEMA", "PUBLIC"}, cfg.excludedSchemas())

	cfg.ExcludedSchemas = []string{"STAGING"}
	assert.Equal(t, []string{"STAGING"}, cfg.excludedSchemas())
}
