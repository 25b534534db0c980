package asset

import "strings"

const (
	SourceHive      Source = "Hive"
	SourceADLS      Source = "ADLS"
	SourceSnowflake Source = "Snowflake"
)

// AllSupportedSources holds a list of every source the catalog understands
var AllSupportedSources = []Source{
	SourceHive,
	SourceADLS,
	SourceSnowflake,
}

// Source identifies the system an asset originates from. Hive and ADLS
// assets are materialized from the flat-file meta store; Snowflake assets
// are fetched live from the warehouse.
type Source string

// String cast Source to string
func (s Source) String() string {
	return string(s)
}

// IsValid will validate whether the source name is valid or not
func (s Source) IsValid() bool {
	switch s {
	case SourceHive, SourceADLS, SourceSnowflake:
		return true
	}
	return false
}

// IsWarehouse reports whether assets of this source are fetched live
// rather than from the cached flat-file tables.
func (s Source) IsWarehouse() bool {
	return s == SourceSnowflake
}

// ParseSource matches a source name case-insensitively.
func ParseSource(name string) (Source, bool) {
	for _, s := range AllSupportedSources {
		if strings.EqualFold(name, s.String()) {
			return s, true
		}
	}
	return "", false
}
