package store

import (
	"errors"
	"fmt"
)

// Reason classifies why a sheet operation failed.
type Reason string

const (
	ReasonMissingWriteURL  Reason = "missing-write-url"
	ReasonMissingUpdateURL Reason = "missing-update-url"
	ReasonMissingRowNumber Reason = "missing-row-number"
	ReasonResponseError    Reason = "response-error"
	ReasonException        Reason = "exception"
	ReasonNoRows           Reason = "no-rows"
)

// ErrMissingDataURL is returned by FetchAll when no data URL is configured.
var ErrMissingDataURL = errors.New("sheet data url is not set")

// SyncError describes a failed write to the sheet.
type SyncError struct {
	Op         string
	Reason     Reason
	StatusCode int
	Body       string
	Err        error
}

func (e *SyncError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("sheet %s: %s: %v", e.Op, e.Reason, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("sheet %s: %s: status %d", e.Op, e.Reason, e.StatusCode)
	default:
		return fmt.Sprintf("sheet %s: %s", e.Op, e.Reason)
	}
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason of err, or "" when err is not a SyncError.
func ReasonOf(err error) Reason {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Reason
	}
	return ""
}
