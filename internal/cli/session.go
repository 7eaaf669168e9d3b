package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/archive"
	"github.com/glorpus-work/vibkit/pkg/catalog"
	"github.com/glorpus-work/vibkit/pkg/config"
	"github.com/glorpus-work/vibkit/pkg/depot"
	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/glorpus-work/vibkit/pkg/hooks"
	"github.com/glorpus-work/vibkit/pkg/installer"
	"github.com/glorpus-work/vibkit/pkg/orchestrator"
	"github.com/glorpus-work/vibkit/pkg/plan"
	"github.com/spf13/afero"
)

// session is one connected host with its orchestrator.
type session struct {
	cfg  *config.Config
	host executor.Host
	orch *orchestrator.Orchestrator
}

// openSession loads the configuration, connects to hostArg and wires the orchestrator.
// Progress events are written to progress in text mode.
func openSession(ctx context.Context, hostArg, proxy string, progress io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg); err != nil {
		return nil, err
	}
	if proxy == "" {
		proxy = cfg.Settings.Proxy
	}

	hostCfg, err := cfg.ResolveHost(hostArg)
	if err != nil {
		return nil, err
	}
	host, err := Connect(ctx, cfg.Settings, hostCfg)
	if err != nil {
		return nil, err
	}

	orch, err := newOrchestrator(cfg, hostCfg, host, proxy)
	if err != nil {
		_ = host.Close()
		return nil, err
	}
	if cfg.Settings.OutputFormat == FormatText {
		orch.Hooks = orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			if e.Msg != "" {
				_, _ = fmt.Fprintf(progress, "%s: %s\n", e.Phase, e.Msg)
			} else {
				_, _ = fmt.Fprintf(progress, "%s\n", e.Phase)
			}
		}}
	}
	return &session{cfg: cfg, host: host, orch: orch}, nil
}

// Close ends the host session.
func (s *session) Close() {
	if err := s.host.Close(); err != nil {
		logger.Warn("Failed to close host session", logger.Fields{"host": s.host.Name(), "error": err.Error()})
	}
}

// newOrchestrator wires the components of one invocation around host.
func newOrchestrator(cfg *config.Config, hostCfg config.HostConfig, host executor.Host, proxy string) (*orchestrator.Orchestrator, error) {
	prober, err := depot.NewHTTPProber(cfg.Settings.ProbeTimeout, proxy)
	if err != nil {
		return nil, err
	}

	orch := &orchestrator.Orchestrator{
		Host:    host,
		Locator: depot.NewLocator(afero.NewOsFs(), prober),
		Catalog: catalog.NewReader(host, archive.NewInspector(), proxy),
		Planner: plan.NewBuilder(),
		Invoker: installer.NewInvoker(host),

		HookVars: hostCfg.HookVars(),
	}

	scripts := map[hooks.HookType]string{
		hooks.PreApply:  cfg.Settings.Hooks.PreApply,
		hooks.PostApply: cfg.Settings.Hooks.PostApply,
	}
	if scripts[hooks.PreApply] != "" || scripts[hooks.PostApply] != "" {
		policy := hooks.NewTengoExecutor()
		if err := hooks.LoadHooks(policy, scripts); err != nil {
			return nil, err
		}
		orch.Policy = policy
	}
	return orch, nil
}
