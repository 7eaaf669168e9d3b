// Package installer submits operations to the host executor and interprets what comes back.
// It never changes a host by itself.
package installer

import (
	"context"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// Invoker hands operations to a host executor.
type Invoker struct {
	exec executor.Executor
}

// NewInvoker creates an Invoker submitting to exec.
func NewInvoker(exec executor.Executor) *Invoker {
	return &Invoker{exec: exec}
}

// Apply submits op against depot, a location the host can read. Executor errors are returned unchanged
// so the host's diagnostic reaches the user intact.
func (i *Invoker) Apply(ctx context.Context, op model.Operation, depot string, target model.Target, opts model.InstallOptions) (model.InstallationResult, error) {
	args := executor.BuildArguments(op, depot, target, opts)
	for _, key := range clientSideOnly(op, opts) {
		logger.Debug("Option is not accepted by the host command and only shaped the plan",
			logger.Fields{"operation": string(op), "option": key})
	}

	result, err := i.exec.Apply(ctx, op, args)
	if err != nil {
		return model.InstallationResult{}, err
	}
	logger.Debug("Host answered", logger.Fields{
		"installed":       len(result.Installed),
		"removed":         len(result.Removed),
		"skipped":         len(result.Skipped),
		"reboot_required": result.RebootRequired,
	})
	return result, nil
}

// clientSideOnly lists the set options the operation's host command does not take.
func clientSideOnly(op model.Operation, opts model.InstallOptions) []string {
	var keys []string
	if opts.AllowDowngrades && !executor.Supports(op, executor.KeyAllowDowngrades) {
		keys = append(keys, executor.KeyAllowDowngrades)
	}
	if opts.OkToRemove && !executor.Supports(op, executor.KeyOkToRemove) {
		keys = append(keys, executor.KeyOkToRemove)
	}
	if opts.NoHardwareWarning && !executor.Supports(op, executor.KeyNoHardwareWarning) {
		keys = append(keys, executor.KeyNoHardwareWarning)
	}
	return keys
}

// Interpret maps a result to exactly one outcome: dry run first, then no-op, then reboot needed, else live.
func Interpret(result model.InstallationResult, opts model.InstallOptions) model.Outcome {
	switch {
	case opts.DryRun:
		return model.OutcomeDryRun
	case len(result.Installed) == 0 && len(result.Removed) == 0:
		return model.OutcomeNoChanges
	case opts.NoLiveInstall || result.RebootRequired:
		return model.OutcomeRebootRequired
	default:
		return model.OutcomeAppliedLive
	}
}

// Summarize builds the report of a completed operation. Risk warnings are attached to every successful
// report.
func Summarize(host string, op model.Operation, depot model.DepotReference, plan *model.InstallationPlan,
	result model.InstallationResult, opts model.InstallOptions) model.Report {
	outcome := Interpret(result, opts)
	return model.Report{
		Host:      host,
		Operation: op,
		Depot:     depot,
		Outcome:   outcome,
		Message:   outcome.Message(),
		Plan:      plan,
		Result:    &result,
		Warnings:  opts.RiskWarnings(),
	}
}
