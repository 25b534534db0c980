package cli

import "github.com/MakeNowJust/heredoc"

var envHelp = map[string]string{
	"short": "List of supported environment variables",
	"long": heredoc.Doc(`
		SEXTANT_LOG_LEVEL: logging level, one of debug, info, warn, error. Default: info.

		SEXTANT_SERVICE_HOST: host the HTTP server binds to. Default: 0.0.0.0.

		SEXTANT_SERVICE_PORT: port the HTTP server listens on. Default: 8080.

		SEXTANT_FLATFILE_DIR: directory holding the CSV table exports. Default: ./db_mock_data.

		SEXTANT_SNOWFLAKE_ENABLED: set to true to serve warehouse assets.

		SEXTANT_SNOWFLAKE_ACCOUNT, SEXTANT_SNOWFLAKE_USERNAME, SEXTANT_SNOWFLAKE_PASSWORD,
		SEXTANT_SNOWFLAKE_WAREHOUSE, SEXTANT_SNOWFLAKE_DATABASE: warehouse connection settings,
		all required when the warehouse source is enabled.
	`),
}
