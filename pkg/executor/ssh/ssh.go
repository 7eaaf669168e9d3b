// Package ssh reaches a host's software manager over SSH by running esxcli with the keyvalue formatter.
package ssh

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	scp "github.com/bramvdbogaerde/go-scp"
	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/kballard/go-shellquote"
	"golang.org/x/crypto/ssh"
)

const (
	defaultPort    = 22
	defaultTimeout = 30 * time.Second
	datastoreRoot  = "/vmfs/volumes"
	stagingPrefix  = "vibkit-staging-"
	stagingMode    = "0644"
	maintenanceOn  = "Enabled"
)

// Config describes how to reach a host over SSH. At least one of Password and KeyPath must be set.
// Offline bundles are staged in StagingDir, or at the root of Datastore when StagingDir is empty.
type Config struct {
	Address    string
	Port       int
	Username   string
	Password   string
	KeyPath    string
	Timeout    time.Duration
	Datastore  string
	StagingDir string
}

// Host is an open SSH connection to one host.
type Host struct {
	*executor.ESXCLI

	cfg    Config
	client *ssh.Client
	exec   execFunc
	staged map[string]bool
}

var _ executor.Host = (*Host)(nil)

// execFunc runs a command line on the host and returns its combined output.
type execFunc func(ctx context.Context, command string) ([]byte, error)

// commandFailed is a command that ran to completion with a non-zero exit status.
type commandFailed struct {
	status int
	output string
}

func (e *commandFailed) Error() string {
	return fmt.Sprintf("command exited with status %d: %s", e.status, e.output)
}

// Connect dials the host and authenticates.
func Connect(ctx context.Context, cfg Config) (*Host, error) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	auth, err := authMethods(cfg)
	if err != nil {
		return nil, errors.ErrExecutorSessionFailureWithHost(cfg.Address, err)
	}
	clientConfig := &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // ESXi hosts usually carry self-signed keys
		Timeout:         cfg.Timeout,
	}

	addr := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port))
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.ErrExecutorSessionFailureWithHost(cfg.Address, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		_ = conn.Close()
		return nil, errors.ErrExecutorSessionFailureWithHost(cfg.Address, err)
	}
	client := ssh.NewClient(c, chans, reqs)
	logger.Debug("SSH session established", logger.Fields{"host": cfg.Address, "port": cfg.Port})

	return newHost(cfg, client, clientExec(client)), nil
}

func newHost(cfg Config, client *ssh.Client, exec execFunc) *Host {
	return &Host{
		ESXCLI: executor.NewESXCLI(&runner{host: cfg.Address, exec: exec}),
		cfg:    cfg,
		client: client,
		exec:   exec,
		staged: make(map[string]bool),
	}
}

func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if cfg.KeyPath != "" {
		key, err := os.ReadFile(cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read SSH key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SSH key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method provided (need password or SSH key)")
	}
	return methods, nil
}

// clientExec runs each command in its own session. Cancelling ctx closes the session.
func clientExec(client *ssh.Client) execFunc {
	return func(ctx context.Context, command string) ([]byte, error) {
		session, err := client.NewSession()
		if err != nil {
			return nil, err
		}
		defer session.Close()

		type result struct {
			out []byte
			err error
		}
		done := make(chan result, 1)
		go func() {
			out, err := session.CombinedOutput(command)
			done <- result{out: out, err: err}
		}()

		select {
		case <-ctx.Done():
			_ = session.Close()
			return nil, ctx.Err()
		case r := <-done:
			var exitErr *ssh.ExitError
			if stderrors.As(r.err, &exitErr) {
				return r.out, &commandFailed{status: exitErr.ExitStatus(), output: strings.TrimSpace(string(r.out))}
			}
			return r.out, r.err
		}
	}
}

// Name returns the configured host address.
func (h *Host) Name() string {
	return h.cfg.Address
}

// InMaintenanceMode asks the host for its maintenance mode state.
func (h *Host) InMaintenanceMode(ctx context.Context) (bool, error) {
	out, err := h.exec(ctx, "esxcli system maintenanceMode get")
	if err != nil {
		return false, classify(h.Name(), err)
	}
	return strings.TrimSpace(string(out)) == maintenanceOn, nil
}

// stagingDir is where bundles go on the host; "" when neither a directory nor a datastore is configured.
// The ramdisk behind /tmp is too small for image profile bundles, so there is no fallback.
func (h *Host) stagingDir() string {
	if h.cfg.StagingDir != "" {
		return h.cfg.StagingDir
	}
	if h.cfg.Datastore != "" {
		return path.Join(datastoreRoot, h.cfg.Datastore)
	}
	return ""
}

// Stage copies a local bundle to the staging directory on the host.
func (h *Host) Stage(ctx context.Context, localPath string) (string, error) {
	dir := h.stagingDir()
	if dir == "" {
		return "", fmt.Errorf("%w: host %s", errors.ErrStagingNotConfigured, h.Name())
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", localPath)
	}
	defer f.Close()

	client, err := scp.NewClientBySSH(h.client)
	if err != nil {
		return "", errors.ErrExecutorSessionFailureWithHost(h.Name(), err)
	}
	defer client.Close()

	remote := path.Join(dir, stagingPrefix+filepath.Base(localPath))
	logger.Info("Copying bundle to host", logger.Fields{"host": h.Name(), "path": remote})
	if err := client.CopyFile(ctx, f, remote, stagingMode); err != nil {
		return "", errors.ErrExecutorSessionFailureWithHost(h.Name(), fmt.Errorf("failed to copy %s: %w", localPath, err))
	}
	h.staged[remote] = true
	return remote, nil
}

// Unstage deletes a staged bundle from the host.
func (h *Host) Unstage(ctx context.Context, hostPath string) error {
	if _, err := h.exec(ctx, "rm -f "+shellquote.Join(hostPath)); err != nil {
		return classify(h.Name(), err)
	}
	delete(h.staged, hostPath)
	logger.Debug("Removed staged bundle", logger.Fields{"host": h.Name(), "path": hostPath})
	return nil
}

// Close removes bundles still staged and closes the SSH connection.
func (h *Host) Close() error {
	for hostPath := range h.staged {
		if err := h.Unstage(context.Background(), hostPath); err != nil {
			logger.Warn("Failed to remove staged bundle", logger.Fields{"host": h.Name(), "path": hostPath, "error": err.Error()})
		}
	}
	if h.client == nil {
		return nil
	}
	return h.client.Close()
}

// runner renders esxcli invocations as quoted shell command lines.
type runner struct {
	host string
	exec execFunc
}

func (r *runner) Run(ctx context.Context, args []string) ([]executor.Record, error) {
	command := commandLine(args)
	out, err := r.exec(ctx, command)
	if err != nil {
		return nil, classify(r.host, err)
	}
	records, err := executor.DecodeKeyValue(bytes.NewReader(out))
	if err != nil {
		return nil, errors.ErrExecutorSessionFailureWithHost(r.host, fmt.Errorf("failed to decode output: %w", err))
	}
	return records, nil
}

func commandLine(args []string) string {
	return "esxcli --formatter=keyvalue " + shellquote.Join(args...)
}

// classify keeps a refusing host's output verbatim; anything else is a transport problem.
func classify(host string, err error) error {
	var failed *commandFailed
	if stderrors.As(err, &failed) {
		return errors.ErrExecutorRejectedWithDiagnostic(failed.output)
	}
	return errors.ErrExecutorSessionFailureWithHost(host, err)
}
