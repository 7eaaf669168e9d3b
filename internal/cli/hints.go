package cli

import (
	stderrors "errors"

	"github.com/glorpus-work/vibkit/pkg/errors"
)

// hints pairs taxonomy errors with a remediation, most specific first.
var hints = []struct {
	err  error
	hint string
}{
	{errors.ErrDepotUnreachable, "check that the depot URL answers or that the bundle path exists on this machine"},
	{errors.ErrInvalidDepotReference, "a depot is an http(s) URL ending in .xml or an offline bundle ending in .zip"},
	{errors.ErrDepotUnreadable, "the depot exists but could not be read; re-download the offline bundle or check the depot index"},
	{errors.ErrConflictingArguments, "give only one depot flag, and VIBs either by name or by URL"},
	{errors.ErrNoTarget, "name an image profile with --profile or VIBs with --vib or --vib-url"},
	{errors.ErrInvalidPackageSpec, "write VIBs as name, name:version, vendor:name or vendor:name:version"},
	{errors.ErrProfileNotFound, "list the depot's image profiles with 'vibkit depot profiles'"},
	{errors.ErrAmbiguousPackageSpec, "qualify the VIB with its vendor, as vendor:name"},
	{errors.ErrPackageNotFound, "list the depot's VIBs with 'vibkit depot vibs'"},
	{errors.ErrWouldRemovePackages, "re-run with --ok-to-remove, or use 'vibkit profile update' to keep extra VIBs"},
	{errors.ErrPolicyRejected, "a pre_apply hook vetoed the operation; see its message"},
	{errors.ErrExecutorSessionFailure, "check the host address, the credentials and the network path to the host"},
	{errors.ErrStagingNotConfigured, "set datastore or staging_dir for the host in the configuration file"},
	{errors.ErrExecutorRejected, "the host refused the request; its diagnostic is shown above"},
	{errors.ErrUnknownHost, "give --host as a configured host name or an address"},
	{errors.ErrConfigValidation, "fix the configuration file or run 'vibkit config init --force'"},
	{errors.ErrHookLoad, "check the hooks.pre_apply and hooks.post_apply paths in the configuration"},
}

// Hint returns a remediation for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}
