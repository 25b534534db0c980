package asset

import (
	"fmt"
	"strings"

	"github.com/sextant-data/sextant/core/validator"
)

type Filter struct {
	Sources []Source `json:"sources" validate:"omitempty,dive,oneof=Hive ADLS Snowflake"`
}

func (f *Filter) Validate() error {
	return validator.ValidateStruct(f)
}

// WantsWarehouse reports whether the filter selects the live warehouse
// source, alone or alongside flat-file sources.
func (f Filter) WantsWarehouse() bool {
	for _, s := range f.Sources {
		if s.IsWarehouse() {
			return true
		}
	}
	return false
}

// WantsFlatFile reports whether the filter selects at least one
// flat-file-backed source. An empty filter selects everything.
func (f Filter) WantsFlatFile() bool {
	if len(f.Sources) == 0 {
		return true
	}
	for _, s := range f.Sources {
		if !s.IsWarehouse() {
			return true
		}
	}
	return false
}

// Matches reports whether an asset's source passes the filter.
func (f Filter) Matches(s Source) bool {
	if len(f.Sources) == 0 {
		return true
	}
	for _, want := range f.Sources {
		if want == s {
			return true
		}
	}
	return false
}

// BuildFilter parses a comma-separated list of source names,
// case-insensitively, into a validated filter. An empty list yields the
// zero filter, which selects the flat-file sources only.
func BuildFilter(sourceList string) (Filter, error) {
	var flt Filter
	if sourceList == "" {
		return flt, nil
	}

	for _, raw := range strings.Split(sourceList, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		src, ok := ParseSource(raw)
		if !ok {
			return flt, fmt.Errorf("unknown source: %q", raw)
		}
		flt.Sources = append(flt.Sources, src)
	}

	if err := flt.Validate(); err != nil {
		return flt, err
	}
	return flt, nil
}
