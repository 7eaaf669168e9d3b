package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDepotCmd creates the depot command with its listing subcommands.
func NewDepotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depot",
		Short: "Inspect a depot",
		Long:  "List what a depot publishes, as seen by one ESXi host",
	}

	cmd.AddCommand(
		newDepotListCmd("profiles", "List the image profiles of a depot", false),
		newDepotListCmd("vibs", "List the image profiles and VIBs of a depot", true),
		newDepotCheckCmd(),
	)

	return cmd
}

func newDepotListCmd(use, short string, withPackages bool) *cobra.Command {
	f := &depotFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDepotList(cmd, f, withPackages)
		},
	}
	addDepotFlags(cmd, f)

	return cmd
}

func newDepotCheckCmd() *cobra.Command {
	f := &depotFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that a depot is reachable and readable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDepotCheck(cmd, f)
		},
	}
	addDepotFlags(cmd, f)

	return cmd
}

func runDepotList(cmd *cobra.Command, f *depotFlags, withPackages bool) error {
	ref, kind, err := f.reference()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), f.host, f.proxy, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Settings.CommandTimeout)
	defer cancel()

	contents, err := s.orch.Browse(ctx, ref, kind, withPackages)
	if err != nil {
		return err
	}
	return printContents(cmd.OutOrStdout(), contents, s.cfg.Settings.OutputFormat, withPackages)
}

func runDepotCheck(cmd *cobra.Command, f *depotFlags) error {
	ref, kind, err := f.reference()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), f.host, f.proxy, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Settings.CommandTimeout)
	defer cancel()

	contents, err := s.orch.Browse(ctx, ref, kind, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s depot %s is readable: %d image profiles\n",
		contents.Depot.Kind, contents.Depot.Location, len(contents.Profiles))
	return err
}
