package cli

import (
	"context"
	"fmt"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/config"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/executor"
	sshexec "github.com/glorpus-work/vibkit/pkg/executor/ssh"
	"github.com/glorpus-work/vibkit/pkg/executor/vsphere"
)

// HostConnector opens a session to one host.
type HostConnector func(ctx context.Context, settings config.Settings, host config.HostConfig) (executor.Host, error)

// Connect opens host sessions for every command. Tests replace it.
var Connect HostConnector = connectHost

func connectHost(ctx context.Context, settings config.Settings, host config.HostConfig) (executor.Host, error) {
	logger.Debug("Connecting to host", logger.Fields{"host": host.Address, "transport": host.Transport})

	switch host.Transport {
	case config.TransportVSphere:
		h, err := vsphere.Connect(ctx, vsphere.Config{
			Address:    host.Address,
			VCenter:    host.VCenter,
			Username:   host.Username,
			Password:   host.Password(),
			Insecure:   settings.Insecure,
			Datacenter: host.Datacenter,
			Datastore:  host.Datastore,
		})
		if err != nil {
			return nil, err
		}
		return h, nil
	case config.TransportSSH:
		h, err := sshexec.Connect(ctx, sshexec.Config{
			Address:    host.Address,
			Port:       host.Port,
			Username:   host.Username,
			Password:   host.Password(),
			KeyPath:    host.SSHKeyPath,
			Timeout:    settings.ProbeTimeout,
			Datastore:  host.Datastore,
			StagingDir: host.StagingDir,
		})
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", errors.ErrExecutorNotConfigured, host.Transport)
	}
}
