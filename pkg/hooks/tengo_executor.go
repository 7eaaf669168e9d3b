package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

var _ HookManager = (*TengoExecutor)(nil)

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// AddHook adds or replaces the script for the hook's type.
func (e *TengoExecutor) AddHook(hook Hook) error {
	switch hook.Type {
	case PreApply, PostApply:
	default:
		return fmt.Errorf("%w: unsupported hook type %q", errors.ErrHookLoad, hook.Type)
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hook.Type] = hook.Content
	return nil
}

// HasHook checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasHook(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}

// Execute runs the specified hook type with the given context. A script that assigns an error or a
// non-empty string to err rejects the operation.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "text", "times", "enum"))

	// err is declared up front so block-level assignments in the script reach the global.
	if err := scriptInstance.Add("err", ""); err != nil {
		return fmt.Errorf("failed to add err to script: %w", err)
	}
	for name, value := range contextVars(ctx) {
		if err := scriptInstance.Add(name, value); err != nil {
			return fmt.Errorf("failed to add %s to script: %w", name, err)
		}
	}
	for k, v := range ctx.Vars {
		if err := scriptInstance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookExecution, err)
	}

	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w: %s: %w", errors.ErrPolicyRejected, errors.ErrHookScript, hookType, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %w: %s: %s", errors.ErrPolicyRejected, errors.ErrHookScript, hookType, v)
			}
		}
	}
	return nil
}

// contextVars flattens a HookContext into script globals.
func contextVars(ctx HookContext) map[string]interface{} {
	vars := map[string]interface{}{
		"host":            ctx.Host,
		"operation":       string(ctx.Operation),
		"depot":           ctx.Depot,
		"target":          ctx.Target,
		"dryRun":          ctx.Options.DryRun,
		"force":           ctx.Options.Force,
		"noSigCheck":      ctx.Options.NoSigCheck,
		"okToRemove":      ctx.Options.OkToRemove,
		"allowDowngrades": ctx.Options.AllowDowngrades,
		"toInstall":       []interface{}{},
		"toUpgrade":       []interface{}{},
		"toRemove":        []interface{}{},
		"installed":       []interface{}{},
		"removed":         []interface{}{},
		"rebootRequired":  false,
		"outcome":         string(ctx.Outcome),
	}
	if ctx.Plan != nil {
		vars["toInstall"] = specList(ctx.Plan.ToInstall)
		vars["toRemove"] = specList(ctx.Plan.ToRemove)
		upgrades := make([]interface{}, 0, len(ctx.Plan.ToUpgrade))
		for _, u := range ctx.Plan.ToUpgrade {
			upgrades = append(upgrades, map[string]interface{}{
				"name": u.To.Name,
				"from": u.From.Version,
				"to":   u.To.Version,
			})
		}
		vars["toUpgrade"] = upgrades
	}
	if ctx.Result != nil {
		vars["installed"] = specList(ctx.Result.Installed)
		vars["removed"] = specList(ctx.Result.Removed)
		vars["rebootRequired"] = ctx.Result.RebootRequired
	}
	return vars
}

func specList(specs []model.PackageSpec) []interface{} {
	out := make([]interface{}, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.String())
	}
	return out
}
