// Package vsphere reaches a host's software manager through the vSphere API. Commands go through the
// host's esxcli managed-method executor, so no shell access is needed.
package vsphere

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/vmware/govmomi/cli/esx"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/session"
	"github.com/vmware/govmomi/session/cache"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/soap"
)

// stagingPrefix is prepended to bundles uploaded to a datastore.
const stagingPrefix = "vibkit-staging-"

// Config describes how to reach a host.
type Config struct {
	// Address is the ESXi host name or address. When VCenter is set it is the host's inventory name.
	Address    string
	VCenter    string
	Username   string
	Password   string
	Insecure   bool
	Datacenter string
	Datastore  string
}

// Host is an open vSphere session bound to one host system.
type Host struct {
	*executor.ESXCLI

	cfg        Config
	client     *vim25.Client
	finder     *find.Finder
	datacenter *object.Datacenter
	system     *object.HostSystem

	// staged maps host-side paths to the datastore paths they were uploaded to.
	staged map[string]string
}

var _ executor.Host = (*Host)(nil)

// Connect logs in and resolves the host system.
func Connect(ctx context.Context, cfg Config) (*Host, error) {
	endpoint := cfg.Address
	if cfg.VCenter != "" {
		endpoint = cfg.VCenter
	}
	u, err := sdkURL(endpoint, cfg.Username, cfg.Password)
	if err != nil {
		return nil, errors.ErrExecutorSessionFailureWithHost(cfg.Address, err)
	}

	s := &cache.Session{
		URL:         u,
		Insecure:    cfg.Insecure,
		Passthrough: true,
	}
	c := new(vim25.Client)
	if err := s.Login(ctx, c, nil); err != nil {
		return nil, errors.ErrExecutorSessionFailureWithHost(cfg.Address, err)
	}

	h, err := attach(ctx, c, cfg)
	if err != nil {
		_ = session.NewManager(c).Logout(ctx)
		return nil, errors.ErrExecutorSessionFailureWithHost(cfg.Address, err)
	}
	logger.Debug("vSphere session established", logger.Fields{"host": cfg.Address, "endpoint": u.Host})
	return h, nil
}

// attach binds a logged-in client to the configured host system.
func attach(ctx context.Context, c *vim25.Client, cfg Config) (*Host, error) {
	finder := find.NewFinder(c, true)

	var (
		dc  *object.Datacenter
		err error
	)
	if cfg.Datacenter != "" {
		dc, err = finder.Datacenter(ctx, cfg.Datacenter)
	} else {
		dc, err = finder.DefaultDatacenter(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find datacenter: %w", err)
	}
	finder.SetDatacenter(dc)

	var system *object.HostSystem
	if cfg.VCenter != "" {
		system, err = finder.HostSystem(ctx, cfg.Address)
	} else {
		system, err = finder.DefaultHostSystem(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find host system: %w", err)
	}

	return &Host{
		ESXCLI:     executor.NewESXCLI(&runner{client: c, host: system}),
		cfg:        cfg,
		client:     c,
		finder:     finder,
		datacenter: dc,
		system:     system,
		staged:     make(map[string]string),
	}, nil
}

// sdkURL normalizes an endpoint to https://endpoint/sdk with credentials attached.
func sdkURL(endpoint, username, password string) (*url.URL, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("empty endpoint")
	}
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "https://" + endpoint
	}
	if !strings.HasSuffix(endpoint, "/sdk") {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/sdk"
	}
	u, err := soap.ParseURL(endpoint)
	if err != nil {
		return nil, err
	}
	u.User = url.UserPassword(username, password)
	return u, nil
}

// Name returns the configured host address.
func (h *Host) Name() string {
	return h.cfg.Address
}

// InMaintenanceMode reads the host's runtime state.
func (h *Host) InMaintenanceMode(ctx context.Context) (bool, error) {
	var mh mo.HostSystem
	if err := h.system.Properties(ctx, h.system.Reference(), []string{"runtime"}, &mh); err != nil {
		return false, errors.ErrExecutorSessionFailureWithHost(h.Name(), err)
	}
	return mh.Runtime.InMaintenanceMode, nil
}

// Stage uploads a local bundle to a datastore and returns its path as seen from the host.
func (h *Host) Stage(ctx context.Context, localPath string) (string, error) {
	var (
		ds  *object.Datastore
		err error
	)
	if h.cfg.Datastore != "" {
		ds, err = h.finder.Datastore(ctx, h.cfg.Datastore)
	} else {
		ds, err = h.finder.DefaultDatastore(ctx)
	}
	if err != nil {
		return "", errors.ErrExecutorSessionFailureWithHost(h.Name(), fmt.Errorf("failed to find datastore: %w", err))
	}

	name := stagingPrefix + filepath.Base(localPath)
	logger.Info("Uploading bundle to datastore", logger.Fields{"datastore": ds.Name(), "file": name})
	if err := ds.UploadFile(ctx, localPath, name, &soap.DefaultUpload); err != nil {
		return "", errors.ErrExecutorSessionFailureWithHost(h.Name(), fmt.Errorf("failed to upload %s: %w", localPath, err))
	}
	hostPath := path.Join("/vmfs/volumes", ds.Name(), name)
	h.staged[hostPath] = ds.Path(name)
	return hostPath, nil
}

// Unstage deletes a bundle uploaded by Stage from its datastore.
func (h *Host) Unstage(ctx context.Context, hostPath string) error {
	dsPath, ok := h.staged[hostPath]
	if !ok {
		return fmt.Errorf("%s was not staged by this session", hostPath)
	}
	task, err := object.NewFileManager(h.client).DeleteDatastoreFile(ctx, dsPath, h.datacenter)
	if err == nil {
		err = task.Wait(ctx)
	}
	if err != nil {
		return errors.ErrExecutorSessionFailureWithHost(h.Name(), fmt.Errorf("failed to delete %s: %w", dsPath, err))
	}
	delete(h.staged, hostPath)
	logger.Debug("Removed staged bundle", logger.Fields{"host": h.Name(), "path": dsPath})
	return nil
}

// Close removes bundles still staged and ends the vSphere session.
func (h *Host) Close() error {
	ctx := context.Background()
	for hostPath := range h.staged {
		if err := h.Unstage(ctx, hostPath); err != nil {
			logger.Warn("Failed to remove staged bundle", logger.Fields{"host": h.Name(), "path": hostPath, "error": err.Error()})
		}
	}
	return session.NewManager(h.client).Logout(ctx)
}

// runner adapts the esxcli managed-method executor to executor.Runner.
type runner struct {
	client *vim25.Client
	host   *object.HostSystem
	exec   *esx.Executor
}

func (r *runner) Run(ctx context.Context, args []string) ([]executor.Record, error) {
	if r.exec == nil {
		e, err := esx.NewExecutor(ctx, r.client, r.host)
		if err != nil {
			return nil, errors.ErrExecutorSessionFailureWithHost(r.host.Name(), err)
		}
		r.exec = e
	}

	res, err := r.exec.Run(ctx, args)
	if err != nil {
		return nil, classify(r.host.Name(), err)
	}
	records := make([]executor.Record, 0, len(res.Values))
	for _, v := range res.Values {
		records = append(records, executor.Record(v))
	}
	return records, nil
}

// classify separates transport trouble from the host refusing a command.
func classify(host string, err error) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ErrExecutorSessionFailureWithHost(host, err)
	}
	return errors.ErrExecutorRejectedWithDiagnostic(err.Error())
}
