//go:generate mockgen -destination=./mocks/hooks.go . HookManager

// Package hooks runs operator policy scripts around the apply step. A pre_apply script vetoes an
// operation by setting err; a post_apply script sees the host's result.
package hooks

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the hook of the given type, if one is registered.
	Execute(hookType HookType, ctx HookContext) error

	// AddHook registers a hook, replacing any hook of the same type.
	AddHook(hook Hook) error

	// HasHook checks if a hook of the specified type exists.
	HasHook(hookType HookType) bool
}
