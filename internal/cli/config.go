package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/config"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/hooks"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and modify vibkit settings. Hosts are edited in the file itself:

hosts:
  - name: esx01
    address: esx01.lab.local
    transport: ssh
    password_env: ESX01_PASSWORD`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file. Commented pre_apply.tengo and post_apply.tengo
templates are written to a hooks directory next to it; enable one with

  vibkit config set hooks.pre_apply <dir>/hooks/pre_apply.tengo`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(getConfigPath(), force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show settings and configured hosts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return showConfig(cmd.OutOrStdout(), cfg)
			},
		},
		&cobra.Command{
			Use:       "get KEY",
			Short:     "Print one setting",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.Keys,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				value, err := cfg.GetValue(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			},
		},
		&cobra.Command{
			Use:       "set KEY VALUE",
			Short:     "Change one setting and save the file",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.Keys,
			RunE: func(_ *cobra.Command, args []string) error {
				return runConfigSet(getConfigPath(), args[0], args[1])
			},
		},
		initCmd,
	)

	return cmd
}

func showConfig(w io.Writer, cfg *config.Config) error {
	values := cfg.ToMap()
	tw := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SETTING\tVALUE")
	for _, key := range config.Keys {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", key, values[key])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(cfg.Hosts) == 0 {
		_, err := fmt.Fprintln(w, "\nNo hosts configured")
		return err
	}
	_, _ = fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "HOST\tADDRESS\tTRANSPORT\tVCENTER")
	for _, h := range cfg.Hosts {
		resolved, err := cfg.ResolveHost(h.Name)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Name, h.Address, resolved.Transport, h.VCenter)
	}
	return tw.Flush()
}

// runConfigSet changes one key and saves the file only if the result is still valid.
func runConfigSet(path, key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.SetValue(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s=%s rejected: %w", key, value, err)
	}
	if err := cfg.SaveConfig(path); err != nil {
		return err
	}

	logger.Success("Configuration updated", logger.Fields{"key": key, "value": value, "path": path})
	return nil
}

func runConfigInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, errors.ErrConfigFileExists)
	}
	if err := config.DefaultConfig().SaveConfig(path); err != nil {
		return err
	}
	hookDir := filepath.Join(filepath.Dir(path), hookDirName)
	if err := writeHookTemplates(hookDir, force); err != nil {
		return err
	}

	logger.Success("Configuration file created", logger.Fields{"path": path, "hooks": hookDir})
	return nil
}

// writeHookTemplates writes a starting script per hook type. Existing scripts are kept unless force is set.
func writeHookTemplates(dir string, force bool) error {
	if err := os.MkdirAll(dir, hookDirMode); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}
	for _, hookType := range []hooks.HookType{hooks.PreApply, hooks.PostApply} {
		file := filepath.Join(dir, string(hookType)+hooks.HookFileExtension)
		if _, err := os.Stat(file); err == nil && !force {
			logger.Debug("Keeping existing hook script", logger.Fields{"path": file})
			continue
		}
		if err := os.WriteFile(file, []byte(hooks.HookTemplate(hookType)+"\n"), hookFileMode); err != nil {
			return fmt.Errorf("failed to write hook template %s: %w", file, err)
		}
	}
	return nil
}
