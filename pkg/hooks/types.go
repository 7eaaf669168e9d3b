package hooks

import "github.com/glorpus-work/vibkit/pkg/model"

// HookType represents the point at which a hook runs.
type HookType string

// Supported hook types.
const (
	PreApply  HookType = "pre_apply"
	PostApply HookType = "post_apply"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks. Result and Outcome are only set for post_apply.
type HookContext struct {
	Host      string
	Operation model.Operation
	Depot     string
	Target    string
	Options   model.InstallOptions
	Plan      *model.InstallationPlan
	Result    *model.InstallationResult
	Outcome   model.Outcome
	Vars      map[string]interface{}
}
