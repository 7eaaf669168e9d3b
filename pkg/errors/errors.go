// Package errors holds the error taxonomy shared by every vibkit component.
// All errors are terminal for the current invocation; nothing here is retried.
package errors

import (
	"fmt"
	"strings"
)

// Depot errors.
var (
	// ErrInvalidDepotReference is returned when a depot reference is malformed, has an unsupported
	// extension, or does not resolve to something that exists.
	ErrInvalidDepotReference = fmt.Errorf("invalid depot reference")

	// ErrDepotUnreachable marks a depot that is missing or does not answer. It always travels together
	// with ErrInvalidDepotReference.
	ErrDepotUnreachable = fmt.Errorf("depot unreachable")

	// ErrDepotUnreadable is returned when a depot is present but its index cannot be read.
	ErrDepotUnreadable = fmt.Errorf("depot unreadable")

	// ErrConflictingArguments is returned when mutually exclusive inputs are combined.
	ErrConflictingArguments = fmt.Errorf("conflicting arguments")
)

// Resolution and planning errors.
var (
	ErrProfileNotFound       = fmt.Errorf("image profile not found")
	ErrPackageNotFound       = fmt.Errorf("package not found")
	ErrAmbiguousPackageSpec  = fmt.Errorf("ambiguous package spec")
	ErrInvalidPackageSpec    = fmt.Errorf("invalid package spec")
	ErrWouldRemovePackages   = fmt.Errorf("operation would remove installed packages")
	ErrNoTarget              = fmt.Errorf("no image profile or package target given")
	ErrPolicyRejected        = fmt.Errorf("rejected by policy hook")
	ErrUnsupportedOperation  = fmt.Errorf("unsupported operation")
	ErrExecutorNotConfigured = fmt.Errorf("host executor is not configured")
)

// Executor errors.
var (
	// ErrExecutorSessionFailure is returned when no session to the host could be established.
	ErrExecutorSessionFailure = fmt.Errorf("host session failure")

	// ErrExecutorRejected is returned when the host's software manager refused the request.
	ErrExecutorRejected = fmt.Errorf("host rejected request")

	// ErrStagingNotConfigured is returned when an offline bundle has nowhere to go on the host.
	ErrStagingNotConfigured = fmt.Errorf("no staging location configured for offline bundles")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrUnknownHost       = fmt.Errorf("unknown host")
)

// Hook errors.
var (
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// ErrDepotUnreachableWithDetails returns an error matching both ErrInvalidDepotReference and
// ErrDepotUnreachable.
func ErrDepotUnreachableWithDetails(location, reason string) error {
	return fmt.Errorf("%w: %w: %s: %s", ErrInvalidDepotReference, ErrDepotUnreachable, location, reason)
}

// ErrInvalidDepotReferenceWithDetails adds the offending reference to ErrInvalidDepotReference.
func ErrInvalidDepotReferenceWithDetails(reference, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidDepotReference, reference, reason)
}

// ErrDepotUnreadableWithDetails adds the depot location and the underlying cause.
func ErrDepotUnreadableWithDetails(location string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrDepotUnreadable, location, cause)
}

// ErrProfileNotFoundWithName names the missing profile and the depot that was searched.
func ErrProfileNotFoundWithName(profile, depot string) error {
	return fmt.Errorf("%w: %q in depot %s", ErrProfileNotFound, profile, depot)
}

// ErrPackageNotFoundWithSpec names the package spec that matched nothing.
func ErrPackageNotFoundWithSpec(spec string) error {
	return fmt.Errorf("%w: %s", ErrPackageNotFound, spec)
}

// ErrAmbiguousPackageSpecWithCandidates lists the catalog entries a spec matched.
func ErrAmbiguousPackageSpecWithCandidates(spec string, candidates []string) error {
	return fmt.Errorf("%w: %s matches %s; qualify it with a vendor", ErrAmbiguousPackageSpec, spec,
		strings.Join(candidates, ", "))
}

// ErrWouldRemovePackagesWithNames lists the installed packages the plan would remove.
func ErrWouldRemovePackagesWithNames(names []string) error {
	return fmt.Errorf("%w: %s (pass --ok-to-remove to allow)", ErrWouldRemovePackages, strings.Join(names, ", "))
}

// ErrConflictingArgumentsWithDetails describes which arguments clash.
func ErrConflictingArgumentsWithDetails(details string) error {
	return fmt.Errorf("%w: %s", ErrConflictingArguments, details)
}

// ErrExecutorSessionFailureWithHost names the host a session could not be opened to.
func ErrExecutorSessionFailureWithHost(host string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrExecutorSessionFailure, host, cause)
}

// ErrExecutorRejectedWithDiagnostic keeps the host's own diagnostic text verbatim at the end of the message.
func ErrExecutorRejectedWithDiagnostic(diagnostic string) error {
	return fmt.Errorf("%w: %s", ErrExecutorRejected, diagnostic)
}

// ErrUnknownConfigKeyWithName names the configuration key that is not recognized.
func ErrUnknownConfigKeyWithName(key string) error {
	return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
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
