package executor

import (
	"fmt"
	"sort"

	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// Option keys of the executor options mapping.
const (
	KeyDepot             = "depot"
	KeyProfile           = "profile"
	KeyVIBName           = "vibname"
	KeyVIBURL            = "viburl"
	KeyDryRun            = "dryrun"
	KeyForce             = "force"
	KeyMaintenanceMode   = "maintenancemode"
	KeyNoLiveInstall     = "noliveinstall"
	KeyNoSigCheck        = "nosigcheck"
	KeyAllowDowngrades   = "allowdowngrades"
	KeyNoHardwareWarning = "nohardwarewarning"
	KeyOkToRemove        = "oktoremove"
	KeyProxy             = "proxy"
)

// Arguments is the options mapping handed to the executor. Boolean flags are presence-only and map to a nil
// slice; string options map to their values. vibname and viburl may repeat.
type Arguments map[string][]string

// SetFlag marks a boolean flag present.
func (a Arguments) SetFlag(key string) {
	a[key] = nil
}

// Add appends a string value, ignoring empty values.
func (a Arguments) Add(key, value string) {
	if value == "" {
		return
	}
	a[key] = append(a[key], value)
}

// Has reports whether a key is present.
func (a Arguments) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Value returns the first value of a key.
func (a Arguments) Value(key string) string {
	if vs := a[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// esxcliFlags maps option keys to esxcli long flag names.
var esxcliFlags = map[string]string{
	KeyDepot:             "--depot",
	KeyProfile:           "--profile",
	KeyVIBName:           "--vibname",
	KeyVIBURL:            "--viburl",
	KeyDryRun:            "--dry-run",
	KeyForce:             "--force",
	KeyMaintenanceMode:   "--maintenance-mode",
	KeyNoLiveInstall:     "--no-live-install",
	KeyNoSigCheck:        "--no-sig-check",
	KeyAllowDowngrades:   "--allow-downgrades",
	KeyNoHardwareWarning: "--no-hardware-warning",
	KeyOkToRemove:        "--ok-to-remove",
	KeyProxy:             "--proxy",
}

var commonKeys = []string{KeyDepot, KeyDryRun, KeyForce, KeyMaintenanceMode, KeyNoLiveInstall, KeyNoSigCheck, KeyProxy}

// supportedKeys lists the keys each operation's esxcli command accepts.
var supportedKeys = map[model.Operation]map[string]struct{}{
	model.OperationVIBInstall:     keySet(commonKeys, KeyVIBName, KeyVIBURL),
	model.OperationVIBUpdate:      keySet(commonKeys, KeyVIBName, KeyVIBURL),
	model.OperationProfileInstall: keySet(commonKeys, KeyProfile, KeyNoHardwareWarning, KeyOkToRemove),
	model.OperationProfileUpdate:  keySet(commonKeys, KeyProfile, KeyNoHardwareWarning, KeyAllowDowngrades),
}

var commandPaths = map[model.Operation][]string{
	model.OperationVIBInstall:     {"software", "vib", "install"},
	model.OperationVIBUpdate:      {"software", "vib", "update"},
	model.OperationProfileInstall: {"software", "profile", "install"},
	model.OperationProfileUpdate:  {"software", "profile", "update"},
}

func keySet(base []string, extra ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(base)+len(extra))
	for _, k := range append(append([]string{}, base...), extra...) {
		set[k] = struct{}{}
	}
	return set
}

// Supports reports whether an operation's command accepts the key.
func Supports(op model.Operation, key string) bool {
	_, ok := supportedKeys[op][key]
	return ok
}

// BuildArguments shapes the options mapping for an operation. Options the operation's command does not
// accept are left out; they still take part in client-side planning.
func BuildArguments(op model.Operation, depot string, target model.Target, opts model.InstallOptions) Arguments {
	args := Arguments{}
	args.Add(KeyDepot, depot)

	if target.Profile != nil {
		args.Add(KeyProfile, target.Profile.Name)
	}
	for _, p := range target.Packages {
		args.Add(KeyVIBName, p.String())
	}
	for _, u := range target.PackageURLs {
		args.Add(KeyVIBURL, u)
	}

	flags := []struct {
		key string
		set bool
	}{
		{KeyDryRun, opts.DryRun},
		{KeyForce, opts.Force},
		{KeyMaintenanceMode, opts.MaintenanceMode},
		{KeyNoLiveInstall, opts.NoLiveInstall},
		{KeyNoSigCheck, opts.NoSigCheck},
		{KeyAllowDowngrades, opts.AllowDowngrades},
		{KeyNoHardwareWarning, opts.NoHardwareWarning},
		{KeyOkToRemove, opts.OkToRemove},
	}
	for _, f := range flags {
		if f.set && Supports(op, f.key) {
			args.SetFlag(f.key)
		}
	}
	args.Add(KeyProxy, opts.Proxy)

	for key := range args {
		if !Supports(op, key) {
			delete(args, key)
		}
	}
	return args
}

// Render turns an operation and its options mapping into esxcli arguments. Keys are emitted in sorted order.
func Render(op model.Operation, args Arguments) ([]string, error) {
	path, ok := commandPaths[op]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedOperation, op)
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		if !Supports(op, k) {
			return nil, fmt.Errorf("%w: option %q is not accepted by %s", errors.ErrUnsupportedOperation, k, op)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := append([]string{}, path...)
	for _, k := range keys {
		flag := esxcliFlags[k]
		values := args[k]
		if values == nil {
			out = append(out, flag)
			continue
		}
		for _, v := range values {
			out = append(out, flag+"="+v)
		}
	}
	return out, nil
}
