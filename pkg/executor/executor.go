//go:generate mockgen -destination=./mocks/executor.go . Runner,Executor,Host

// Package executor is the contract with the host's own software manager. It turns an options mapping
// into esxcli software commands, runs them through a transport-specific Runner and decodes the
// structured answer. It never mutates a host by any other route.
package executor

import (
	"context"
	"io"

	"github.com/glorpus-work/vibkit/pkg/model"
)

// Record is one structured esxcli output object: field name to values.
type Record map[string][]string

// Runner executes one esxcli command (without the leading "esxcli") and returns its decoded records.
// A command the host refuses must yield an error wrapping errors.ErrExecutorRejected that carries the
// host's diagnostic text verbatim.
type Runner interface {
	Run(ctx context.Context, args []string) ([]Record, error)
}

// Executor is the software-management surface of a host.
type Executor interface {
	// ListProfiles returns the image profiles published by a depot.
	ListProfiles(ctx context.Context, depot, proxy string) ([]model.ImageProfileSpec, error)

	// ListPackages returns the VIBs published by a depot.
	ListPackages(ctx context.Context, depot, proxy string) ([]model.PackageSpec, error)

	// ProfilePackages returns the VIBs that make up an image profile.
	ProfilePackages(ctx context.Context, depot, profile, proxy string) ([]model.PackageSpec, error)

	// InstalledPackages returns the VIBs currently installed on the host.
	InstalledPackages(ctx context.Context) ([]model.PackageSpec, error)

	// Apply submits an install or update and returns the host's result.
	Apply(ctx context.Context, op model.Operation, args Arguments) (model.InstallationResult, error)
}

// Host is an open session to a single host.
type Host interface {
	Executor
	io.Closer

	// Name is the host identifier used for logging and reports.
	Name() string

	// Stage makes a local offline bundle visible to the host and returns the host-side path.
	Stage(ctx context.Context, localPath string) (string, error)

	// Unstage deletes a bundle placed by Stage. Close removes whatever is still staged.
	Unstage(ctx context.Context, hostPath string) error

	// InMaintenanceMode reports whether the host is in maintenance mode.
	InMaintenanceMode(ctx context.Context) (bool, error)
}
