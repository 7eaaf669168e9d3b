package model

// InstallationResult is the host executor's structured answer. The client only reads it.
type InstallationResult struct {
	Installed      []PackageSpec `json:"installed"`
	Removed        []PackageSpec `json:"removed"`
	Skipped        []PackageSpec `json:"skipped"`
	RebootRequired bool          `json:"reboot_required"`
	Message        string        `json:"message,omitempty"`
}

// Outcome is the interpretation of a result. The four outcomes are mutually exclusive.
type Outcome string

const (
	OutcomeDryRun         Outcome = "dry-run"
	OutcomeNoChanges      Outcome = "no-changes"
	OutcomeRebootRequired Outcome = "reboot-required"
	OutcomeAppliedLive    Outcome = "applied-live"
)

// Message is the human-readable line for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeDryRun:
		return "dry run - no mutation"
	case OutcomeNoChanges:
		return "no changes - already applied"
	case OutcomeRebootRequired:
		return "applied; reboot required to activate"
	case OutcomeAppliedLive:
		return "applied live"
	default:
		return string(o)
	}
}

// Report is the user-facing summary of one invocation.
type Report struct {
	Host      string              `json:"host"`
	Operation Operation           `json:"operation"`
	Depot     DepotReference      `json:"depot"`
	Outcome   Outcome             `json:"outcome"`
	Message   string              `json:"message"`
	Plan      *InstallationPlan   `json:"plan,omitempty"`
	Result    *InstallationResult `json:"result,omitempty"`
	Warnings  []string            `json:"warnings,omitempty"`
}
