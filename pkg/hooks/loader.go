package hooks

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/vibkit/pkg/errors"
)

// HookFileExtension is the extension hook scripts must carry.
const HookFileExtension = ".tengo"

// LoadHooks reads the configured script files into manager. Empty paths are skipped.
func LoadHooks(manager HookManager, paths map[HookType]string) error {
	for hookType, path := range paths {
		if path == "" {
			continue
		}
		if filepath.Ext(path) != HookFileExtension {
			return errors.Wrapf(errors.ErrHookLoad, "%s: %s is not a %s script", hookType, path, HookFileExtension)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "error reading hook file %s: %v", path, err)
		}
		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
	}
	return nil
}

// HookTemplate generates a starting point for a hook script.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreApply:
		return `// pre_apply hook
// Runs after planning, before the host is asked to change anything.
// Available variables:
// - host, operation, depot, target: string
// - dryRun, force, noSigCheck, okToRemove, allowDowngrades: bool
// - toInstall, toRemove: array of "vendor:name:version" strings
// - toUpgrade: array of {name, from, to} maps
// - address, transport, vcenter, datacenter, datastore: string, from the host's configuration entry
// Assign a non-empty string to err to reject the operation.

// Example: refuse unsigned installs
/*
if noSigCheck {
    err = "signature checks may not be skipped on " + host
}
*/`
	case PostApply:
		return `// post_apply hook
// Runs after the host answered.
// Available variables: the pre_apply ones plus
// - installed, removed: array of strings
// - rebootRequired: bool
// - outcome: string
`
	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
