package cli

import (
	"context"
	"fmt"

	"github.com/glorpus-work/vibkit/pkg/depot"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/glorpus-work/vibkit/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// depotFlags holds the host and the three mutually exclusive depot inputs.
type depotFlags struct {
	host        string
	depot       string
	remoteDepot string
	localDepot  string
	proxy       string
}

// applyFlags holds everything an install or update command takes.
type applyFlags struct {
	depotFlags
	profile string
	vibs    []string
	vibURLs []string
	opts    model.InstallOptions
}

func addDepotFlags(cmd *cobra.Command, f *depotFlags) {
	cmd.Flags().StringVar(&f.host, "host", "", "Configured host name or host address")
	cmd.Flags().StringVar(&f.depot, "depot", "", "Depot index URL (.xml) or offline bundle (.zip)")
	cmd.Flags().StringVar(&f.remoteDepot, "remote-depot", "", "Online depot index URL")
	cmd.Flags().StringVar(&f.localDepot, "local-depot", "", "Offline bundle path on this machine")
	cmd.Flags().StringVar(&f.proxy, "proxy", "", "Proxy URL for depot access (defaults to config)")
	must(cmd.MarkFlagRequired("host"))
}

func addOptionFlags(cmd *cobra.Command, o *model.InstallOptions) {
	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false, "Report what would change without changing the host")
	cmd.Flags().BoolVar(&o.Force, "force", false, "Skip dependency, conflict and acceptance-level checks")
	cmd.Flags().BoolVar(&o.MaintenanceMode, "maintenance-mode", false, "Treat the host as already in maintenance mode")
	cmd.Flags().BoolVar(&o.NoLiveInstall, "no-live-install", false, "Write to the alternate boot bank only")
	cmd.Flags().BoolVar(&o.NoSigCheck, "no-sig-check", false, "Skip signature and acceptance verification")
	cmd.Flags().BoolVar(&o.AllowDowngrades, "allow-downgrades", false, "Permit installing older versions")
	cmd.Flags().BoolVar(&o.OkToRemove, "ok-to-remove", false, "Permit removing installed VIBs the profile does not contain")
	cmd.Flags().BoolVar(&o.NoHardwareWarning, "no-hardware-warning", false, "Proceed past hardware precheck warnings")
}

// reference returns the selected depot reference and the kind it must have.
func (f *depotFlags) reference() (string, model.DepotKind, error) {
	return depot.SelectReference(f.depot, f.remoteDepot, f.localDepot)
}

// request turns the flags into an orchestrator request.
func (f *applyFlags) request(op model.Operation) (orchestrator.Request, error) {
	ref, kind, err := f.reference()
	if err != nil {
		return orchestrator.Request{}, err
	}

	target := model.Target{PackageURLs: f.vibURLs}
	if f.profile != "" {
		target.Profile = &model.ImageProfileSpec{Name: f.profile}
	}
	for _, raw := range f.vibs {
		spec, err := model.ParsePackageSpec(raw)
		if err != nil {
			return orchestrator.Request{}, fmt.Errorf("%w: %v", errors.ErrInvalidPackageSpec, err)
		}
		target.Packages = append(target.Packages, spec)
	}

	opts := f.opts
	opts.Proxy = f.proxy
	return orchestrator.Request{
		Operation: op,
		Depot:     ref,
		DepotKind: kind,
		Target:    target,
		Options:   opts,
	}, nil
}

// runApply executes one install or update and prints its report.
func runApply(cmd *cobra.Command, op model.Operation, f *applyFlags) error {
	req, err := f.request(op)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), f.host, f.proxy, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()
	if req.Options.Proxy == "" {
		req.Options.Proxy = s.cfg.Settings.Proxy
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Settings.CommandTimeout)
	defer cancel()

	report, err := s.orch.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	return printReport(cmd.OutOrStdout(), report, s.cfg.Settings.OutputFormat)
}
