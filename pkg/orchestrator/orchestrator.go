package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/hooks"
	"github.com/glorpus-work/vibkit/pkg/installer"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// WarningNotInMaintenanceMode is attached when --maintenance-mode is given but the host says otherwise.
const WarningNotInMaintenanceMode = "--maintenance-mode was given but the host is not in maintenance mode"

// unstageTimeout bounds removing a staged bundle once the invocation's own deadline may have passed.
const unstageTimeout = time.Minute

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// enter announces a phase.
func (o *Orchestrator) enter(phase, depot, msg string) {
	logger.Debug("Entering phase", logger.Fields{"phase": phase, "host": o.hostName(), "depot": depot})
	emit(o.Hooks, Event{Phase: phase, Msg: msg})
}

// fail ends the invocation with err.
func (o *Orchestrator) fail(err error) error {
	emit(o.Hooks, Event{Phase: PhaseError, Msg: err.Error()})
	return err
}

func (o *Orchestrator) hostName() string {
	if o.Host == nil {
		return ""
	}
	return o.Host.Name()
}

// Run executes a request end to end and returns its report.
func (o *Orchestrator) Run(ctx context.Context, req Request) (model.Report, error) {
	o.enter(PhaseValidating, req.Depot, req.Target.String())
	if err := o.validate(req); err != nil {
		return model.Report{}, o.fail(err)
	}
	warnings := o.maintenanceWarnings(ctx, req.Options)

	o.enter(PhaseLocating, req.Depot, req.Depot)
	ref, err := o.Locator.LocateAs(ctx, req.Depot, req.DepotKind)
	if err != nil {
		return model.Report{}, o.fail(err)
	}

	o.enter(PhaseResolving, ref.Location, req.Target.String())
	hostRef, err := o.prepareDepot(ctx, ref)
	if err != nil {
		return model.Report{}, o.fail(err)
	}
	defer o.unstage(ctx, ref, hostRef)
	target, targetPackages, err := o.resolve(ctx, req, hostRef)
	if err != nil {
		return model.Report{}, o.fail(err)
	}

	var plan *model.InstallationPlan
	if targetPackages != nil {
		o.enter(PhasePlanning, ref.Location, target.String())
		installed, err := o.Host.InstalledPackages(ctx)
		if err != nil {
			return model.Report{}, o.fail(err)
		}
		p, err := o.Planner.BuildPlan(req.Operation, targetPackages, installed, req.Options)
		if err != nil {
			return model.Report{}, o.fail(err)
		}
		plan = &p
	} else {
		logger.Debug("Skipping planning for URL targets", logger.Fields{"urls": len(target.PackageURLs)})
	}

	policy := hooks.HookContext{
		Host:      o.hostName(),
		Operation: req.Operation,
		Depot:     ref.Location,
		Target:    target.String(),
		Options:   req.Options,
		Plan:      plan,
		Vars:      o.HookVars,
	}
	if err := o.runPolicy(hooks.PreApply, policy); err != nil {
		return model.Report{}, o.fail(err)
	}

	o.enter(PhaseInvoking, ref.Location, string(req.Operation))
	result, err := o.Invoker.Apply(ctx, req.Operation, hostRef.Location, target, req.Options)
	if err != nil {
		return model.Report{}, o.fail(err)
	}

	o.enter(PhaseReporting, ref.Location, "")
	report := installer.Summarize(o.hostName(), req.Operation, ref, plan, result, req.Options)
	report.Warnings = append(report.Warnings, warnings...)

	policy.Result = &result
	policy.Outcome = report.Outcome
	if err := o.runPolicy(hooks.PostApply, policy); err != nil {
		logger.Warn("post_apply hook failed", logger.Fields{"error": err.Error()})
		report.Warnings = append(report.Warnings, fmt.Sprintf("post_apply hook failed: %v", err))
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Msg: string(report.Outcome)})
	return report, nil
}

// validate checks the request shape before anything is contacted.
func (o *Orchestrator) validate(req Request) error {
	if o.Host == nil || o.Locator == nil || o.Catalog == nil || o.Planner == nil || o.Invoker == nil {
		return errors.ErrExecutorNotConfigured
	}

	switch req.Operation {
	case model.OperationProfileInstall, model.OperationProfileUpdate:
		if req.Target.Profile == nil || req.Target.Profile.Name == "" {
			return fmt.Errorf("%w: %s needs an image profile", errors.ErrNoTarget, req.Operation)
		}
		if len(req.Target.Packages) > 0 || len(req.Target.PackageURLs) > 0 {
			return errors.ErrConflictingArgumentsWithDetails("a profile operation does not take VIBs")
		}
	case model.OperationVIBInstall, model.OperationVIBUpdate:
		if len(req.Target.Packages) == 0 && len(req.Target.PackageURLs) == 0 {
			return fmt.Errorf("%w: %s needs at least one VIB", errors.ErrNoTarget, req.Operation)
		}
		if req.Target.Profile != nil {
			return errors.ErrConflictingArgumentsWithDetails("a VIB operation does not take an image profile")
		}
		if len(req.Target.Packages) > 0 && len(req.Target.PackageURLs) > 0 {
			return errors.ErrConflictingArgumentsWithDetails("give VIBs either by name or by URL, not both")
		}
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnsupportedOperation, req.Operation)
	}
	return nil
}

// maintenanceWarnings compares --maintenance-mode with the host's state. A failed check is only logged.
func (o *Orchestrator) maintenanceWarnings(ctx context.Context, opts model.InstallOptions) []string {
	if !opts.MaintenanceMode {
		return nil
	}
	inMaintenance, err := o.Host.InMaintenanceMode(ctx)
	if err != nil {
		logger.Warn("Could not read maintenance mode state", logger.Fields{"host": o.hostName(), "error": err.Error()})
		return nil
	}
	if inMaintenance {
		return nil
	}
	logger.Warn(WarningNotInMaintenanceMode, logger.Fields{"host": o.hostName()})
	return []string{WarningNotInMaintenanceMode}
}

// prepareDepot verifies a depot and, for a local bundle, stages it on the host. The returned reference
// carries the location the host reads from.
func (o *Orchestrator) prepareDepot(ctx context.Context, ref model.DepotReference) (model.DepotReference, error) {
	if err := o.Catalog.Verify(ctx, ref); err != nil {
		return model.DepotReference{}, err
	}
	if ref.IsRemote() {
		return ref, nil
	}
	staged, err := o.Host.Stage(ctx, ref.Location)
	if err != nil {
		return model.DepotReference{}, err
	}
	logger.Debug("Offline bundle staged", logger.Fields{"host": o.hostName(), "path": staged})
	return model.DepotReference{Kind: ref.Kind, Location: staged}, nil
}

// unstage removes a bundle prepareDepot copied to the host. Failure is only logged; the session's Close
// tries again.
func (o *Orchestrator) unstage(ctx context.Context, ref, hostRef model.DepotReference) {
	if ref.IsRemote() || hostRef.Location == ref.Location {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unstageTimeout)
	defer cancel()
	if err := o.Host.Unstage(ctx, hostRef.Location); err != nil {
		logger.Warn("Failed to remove staged bundle", logger.Fields{"host": o.hostName(), "path": hostRef.Location, "error": err.Error()})
		return
	}
	logger.Debug("Staged bundle removed", logger.Fields{"host": o.hostName(), "path": hostRef.Location})
}

// resolve checks the target against the catalog and returns the package set to plan against. A nil set
// means planning does not apply.
func (o *Orchestrator) resolve(ctx context.Context, req Request, depot model.DepotReference) (model.Target, []model.PackageSpec, error) {
	target := req.Target
	if target.Profile != nil {
		profile, err := o.Catalog.RequireProfile(ctx, depot, target.Profile.Name)
		if err != nil {
			return model.Target{}, nil, err
		}
		target.Profile = &profile
		packages, err := o.Catalog.ProfilePackages(ctx, depot, profile.Name)
		if err != nil {
			return model.Target{}, nil, err
		}
		return target, nonNil(packages), nil
	}

	if len(target.Packages) == 0 {
		return target, nil, nil
	}
	packages, err := o.Catalog.ResolvePackages(ctx, depot, target.Packages)
	if err != nil {
		return model.Target{}, nil, err
	}
	return target, nonNil(packages), nil
}

func nonNil(packages []model.PackageSpec) []model.PackageSpec {
	if packages == nil {
		return []model.PackageSpec{}
	}
	return packages
}

func (o *Orchestrator) runPolicy(hookType hooks.HookType, ctx hooks.HookContext) error {
	if o.Policy == nil || !o.Policy.HasHook(hookType) {
		return nil
	}
	logger.Debug("Running policy hook", logger.Fields{"hook": string(hookType)})
	return o.Policy.Execute(hookType, ctx)
}

// Browse lists what a depot publishes. Packages are only listed when withPackages is set.
func (o *Orchestrator) Browse(ctx context.Context, reference string, kind model.DepotKind, withPackages bool) (DepotContents, error) {
	if o.Host == nil || o.Locator == nil || o.Catalog == nil {
		return DepotContents{}, errors.ErrExecutorNotConfigured
	}

	o.enter(PhaseLocating, reference, reference)
	ref, err := o.Locator.LocateAs(ctx, reference, kind)
	if err != nil {
		return DepotContents{}, o.fail(err)
	}

	o.enter(PhaseResolving, ref.Location, "")
	hostRef, err := o.prepareDepot(ctx, ref)
	if err != nil {
		return DepotContents{}, o.fail(err)
	}
	defer o.unstage(ctx, ref, hostRef)
	contents := DepotContents{Depot: ref}
	if contents.Profiles, err = o.Catalog.ListProfiles(ctx, hostRef); err != nil {
		return DepotContents{}, o.fail(err)
	}
	if withPackages {
		if contents.Packages, err = o.Catalog.ListPackages(ctx, hostRef); err != nil {
			return DepotContents{}, o.fail(err)
		}
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Msg: ref.Location})
	return contents, nil
}
