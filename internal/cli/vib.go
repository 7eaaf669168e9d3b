package cli

import (
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/spf13/cobra"
)

// NewVIBCmd creates the vib command with its install and update subcommands.
func NewVIBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vib",
		Short: "Install or update individual VIBs",
		Long:  "Install or update VIBs from a depot on one ESXi host",
	}

	cmd.AddCommand(
		newVIBOperationCmd("install", model.OperationVIBInstall,
			"Install VIBs, replacing installed versions"),
		newVIBOperationCmd("update", model.OperationVIBUpdate,
			"Update VIBs, installing only newer versions"),
	)

	return cmd
}

func newVIBOperationCmd(use string, op model.Operation, short string) *cobra.Command {
	f := &applyFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

VIBs are given by name spec with --vib (name, name:version, vendor:name or
vendor:name:version), resolved against the depot catalog, or by URL with --vib-url.`,
		Example: `  vibkit vib ` + use + ` --host esx01 --depot https://depot.lab/index.xml --vib ntg3
  vibkit vib ` + use + ` --host esx01 --local-depot ./bundle.zip --vib VMW:ntg3:4.1.8 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, op, f)
		},
	}

	addDepotFlags(cmd, &f.depotFlags)
	cmd.Flags().StringSliceVar(&f.vibs, "vib", nil, "VIB name spec (repeatable)")
	cmd.Flags().StringSliceVar(&f.vibURLs, "vib-url", nil, "VIB URL or host path (repeatable)")
	cmd.MarkFlagsOneRequired("vib", "vib-url")
	cmd.MarkFlagsMutuallyExclusive("vib", "vib-url")
	addOptionFlags(cmd, &f.opts)

	return cmd
}
