package cli

import (
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command with its install and update subcommands.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Apply an image profile",
		Long:  "Install or update an image profile from a depot on one ESXi host",
	}

	cmd.AddCommand(
		newProfileOperationCmd("install", model.OperationProfileInstall,
			"Install an image profile, replacing the host image",
			"Installed VIBs the profile does not contain are removed, which needs --ok-to-remove."),
		newProfileOperationCmd("update", model.OperationProfileUpdate,
			"Update the host to an image profile",
			"Installed VIBs the profile does not contain are kept, so unlike install this never fails with\n"+
				"\"operation would remove installed packages\" and --ok-to-remove is not needed."),
	)

	return cmd
}

func newProfileOperationCmd(use string, op model.Operation, short, note string) *cobra.Command {
	f := &applyFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ".\n\n" + note,
		Example: `  vibkit profile ` + use + ` --host esx01 --depot https://depot.lab/index.xml --profile ESXi-8.0U1-standard
  vibkit profile ` + use + ` --host esx01 --local-depot ./VMware-ESXi-8.0U1-depot.zip --profile ESXi-8.0U1-standard --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, op, f)
		},
	}

	addDepotFlags(cmd, &f.depotFlags)
	cmd.Flags().StringVar(&f.profile, "profile", "", "Image profile name")
	must(cmd.MarkFlagRequired("profile"))
	addOptionFlags(cmd, &f.opts)

	return cmd
}
