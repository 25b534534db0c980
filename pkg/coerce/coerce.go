// Package coerce converts the loosely-typed string fields found in the
// flat-file tables and warehouse scans into canonical typed values. Every
// function returns a safe default instead of an error so that one malformed
// field never aborts materialization of the rest of a record.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/golang-module/carbon/v2"
)

// Bool parses string-encoded booleans ("true"/"false", any casing).
// Anything unrecognized, including empty input, coerces to false.
func Bool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Int parses a string-encoded integer, falling back to 0.
func Int(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// OptionalInt parses a string-encoded integer, returning nil when the field
// is empty or unparseable so optional counts stay absent rather than zero.
func OptionalInt(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// Timestamp normalizes a timestamp string of any common layout to RFC3339.
// Unparseable or empty input yields "".
func Timestamp(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	c := carbon.Parse(v, carbon.UTC)
	if c.Error != nil || c.IsZero() {
		return ""
	}
	return c.ToRfc3339String()
}

// JSONRows parses an embedded JSON array of objects, e.g. the mocked sample
// data column. Malformed JSON yields nil; callers log and carry on.
func JSONRows(v string) []map[string]interface{} {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal([]byte(v), &rows); err != nil {
		return nil
	}
	return rows
}
