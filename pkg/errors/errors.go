// Package errors defines the error kinds shared across tldrc and the exit
// codes they map to. Callers classify errors with errors.Is against the
// sentinels below.
package errors

import (
	"errors"
	"fmt"
)

// Common error types.
var (
	// Download errors cover everything between the client and the mirror,
	// including a corrupt remote manifest: a mirror serving garbage must
	// never be mistaken for "no update needed".
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrChecksumMismatch = fmt.Errorf("checksum mismatch")
	ErrManifestInvalid  = fmt.Errorf("invalid checksum manifest")
	ErrResponseTooLarge = fmt.Errorf("response exceeds size limit")

	// Cache errors.
	ErrCacheDirectory  = fmt.Errorf("cache directory cannot be empty")
	ErrCacheEmpty      = fmt.Errorf("cache contains no platform directories")
	ErrPlatformUnknown = fmt.Errorf("platform does not exist")
	ErrPageNotFound    = fmt.Errorf("page not found")
	ErrClockSkew       = fmt.Errorf("modification time of the cache is later than the current system time, please fix your system clock")

	// Config errors.
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")
	ErrConfigFileExists = fmt.Errorf("configuration file already exists")

	// Page errors.
	ErrPageInvalid = fmt.Errorf("not a valid tldr page")
)

// Exit codes preserved for scripting compatibility.
const (
	ExitFailure  = 1
	ExitParse    = 3
	ExitDownload = 4
	ExitPage     = 5
)

// ExitCode returns the process exit code for err. Unclassified errors
// (including I/O and clock failures) map to the generic failure code.
func ExitCode(err error) int {
	switch {
	case errors.Is(err, ErrDownloadFailed),
		errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrManifestInvalid),
		errors.Is(err, ErrResponseTooLarge):
		return ExitDownload
	case errors.Is(err, ErrConfigParse),
		errors.Is(err, ErrConfigEncode):
		return ExitParse
	case errors.Is(err, ErrPageInvalid):
		return ExitPage
	default:
		return ExitFailure
	}
}

// Is reports whether any error in err's chain matches target. Re-exported
// so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
