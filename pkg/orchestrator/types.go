//go:generate mockgen -destination=./mocks/orchestrator.go . DepotLocator,CatalogReader,PlanBuilder,Invoker

package orchestrator

import (
	"context"

	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/glorpus-work/vibkit/pkg/hooks"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// DepotLocator is the subset of the depot locator used by the orchestrator.
type DepotLocator interface {
	LocateAs(ctx context.Context, reference string, want model.DepotKind) (model.DepotReference, error)
}

// CatalogReader is the subset of the catalog reader used by the orchestrator.
type CatalogReader interface {
	Verify(ctx context.Context, depot model.DepotReference) error
	ListProfiles(ctx context.Context, depot model.DepotReference) ([]model.ImageProfileSpec, error)
	ListPackages(ctx context.Context, depot model.DepotReference) ([]model.PackageSpec, error)
	RequireProfile(ctx context.Context, depot model.DepotReference, name string) (model.ImageProfileSpec, error)
	ProfilePackages(ctx context.Context, depot model.DepotReference, profile string) ([]model.PackageSpec, error)
	ResolvePackages(ctx context.Context, depot model.DepotReference, specs []model.PackageSpec) ([]model.PackageSpec, error)
}

// PlanBuilder computes advisory plans.
type PlanBuilder interface {
	BuildPlan(op model.Operation, target, installed []model.PackageSpec, opts model.InstallOptions) (model.InstallationPlan, error)
}

// Invoker submits operations to the host.
type Invoker interface {
	Apply(ctx context.Context, op model.Operation, depot string, target model.Target, opts model.InstallOptions) (model.InstallationResult, error)
}

// Orchestrator runs one invocation against one host through the phases
// validating, locating, resolving, planning, invoking and reporting. No phase is retried.
type Orchestrator struct {
	Host    executor.Host
	Locator DepotLocator
	Catalog CatalogReader
	Planner PlanBuilder
	Invoker Invoker
	Policy  hooks.HookManager // optional pre_apply/post_apply scripts
	Hooks   Hooks             // Hooks for progress and event notifications

	// HookVars are extra globals for policy scripts, such as the host's configuration entry.
	HookVars map[string]interface{}
}

// Phases of an invocation.
const (
	PhaseValidating = "validating"
	PhaseLocating   = "locating"
	PhaseResolving  = "resolving"
	PhasePlanning   = "planning"
	PhaseInvoking   = "invoking"
	PhaseReporting  = "reporting"
	PhaseDone       = "done"
	PhaseError      = "error"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Request is one host software operation.
type Request struct {
	Operation model.Operation
	Depot     string
	// DepotKind is the kind the depot must have, or 0 to accept whatever the reference classifies as.
	DepotKind model.DepotKind
	Target    model.Target
	Options   model.InstallOptions
}

// DepotContents is what a depot publishes.
type DepotContents struct {
	Depot    model.DepotReference     `json:"depot"`
	Profiles []model.ImageProfileSpec `json:"profiles"`
	Packages []model.PackageSpec      `json:"packages,omitempty"`
}
