package asset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyID           = errors.New("asset does not have ID")
	ErrUnknownSource     = errors.New("unknown source")
	ErrNoWarehouse       = errors.New("no warehouse repository configured")
	ErrUnsupportedSample = errors.New("asset has no sample data")
)

// NotFoundError is returned when no asset matches the requested id.
type NotFoundError struct {
	AssetID string
}

func (err NotFoundError) Error() string {
	if err.AssetID != "" {
		return fmt.Sprintf("no such record: %q", err.AssetID)
	}
	return "could not find asset"
}

// InvalidError is returned for ids that cannot address any asset.
type InvalidError struct {
	AssetID string
}

func (err InvalidError) Error() string {
	return fmt.Sprintf("invalid asset id: %q", err.AssetID)
}

// LoadError records a flat-file table that could not be read. It is
// non-fatal: the table degrades to empty and the rest of the set loads.
type LoadError struct {
	Table string
	Err   error
}

func (err LoadError) Error() string {
	return fmt.Sprintf("load table %q: %s", err.Table, err.Err)
}

func (err LoadError) Unwrap() error { return err.Err }

// ConnectError means the warehouse was unreachable or misconfigured.
// Fatal for the request it happened on.
type ConnectError struct {
	Err error
}

func (err ConnectError) Error() string {
	return "warehouse connection error: " + err.Err.Error()
}

func (err ConnectError) Unwrap() error { return err.Err }

// UnsupportedAuthError means an interactive authenticator mode was
// configured for this headless fetch path. Distinct from ConnectError so
// callers can report a configuration problem instead of an outage.
type UnsupportedAuthError struct {
	Authenticator string
}

func (err UnsupportedAuthError) Error() string {
	return fmt.Sprintf("authenticator %q requires interactive browser sign-in and is not supported for headless connections", err.Authenticator)
}

// QueryError wraps a warehouse query rejection. The driver's message is
// passed through verbatim when available.
type QueryError struct {
	Op  string
	Ref string
	Err error
}

func (err QueryError) Error() string {
	var s strings.Builder
	s.WriteString("warehouse query error: ")
	if err.Op != "" {
		s.WriteString(err.Op + ": ")
	}
	if err.Ref != "" {
		s.WriteString("object '" + err.Ref + "': ")
	}
	s.WriteString(err.Err.Error())
	return s.String()
}

func (err QueryError) Unwrap() error { return err.Err }

// StreamError means row delivery was interrupted mid-stream. Partial rows
// must never be surfaced as a complete result.
type StreamError struct {
	Op       string
	Received int
	Err      error
}

func (err StreamError) Error() string {
	return fmt.Sprintf("row stream interrupted after %d rows: %s: %s", err.Received, err.Op, err.Err)
}

func (err StreamError) Unwrap() error { return err.Err }
