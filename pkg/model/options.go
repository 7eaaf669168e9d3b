package model

// InstallOptions are the orthogonal switches forwarded to the host executor.
type InstallOptions struct {
	DryRun            bool   `json:"dry_run"`
	Force             bool   `json:"force"`
	MaintenanceMode   bool   `json:"maintenance_mode"`
	NoLiveInstall     bool   `json:"no_live_install"`
	NoSigCheck        bool   `json:"no_sig_check"`
	AllowDowngrades   bool   `json:"allow_downgrades"`
	OkToRemove        bool   `json:"ok_to_remove"`
	NoHardwareWarning bool   `json:"no_hardware_warning"`
	Proxy             string `json:"proxy,omitempty"`
}

// Risk warnings attached to successful results.
const (
	WarningForce      = "--force skipped dependency, conflict and acceptance-level checks"
	WarningNoSigCheck = "--no-sig-check skipped signature and acceptance verification"
)

// RiskWarnings returns a warning for every risk-bearing option that is set.
func (o InstallOptions) RiskWarnings() []string {
	var warnings []string
	if o.Force {
		warnings = append(warnings, WarningForce)
	}
	if o.NoSigCheck {
		warnings = append(warnings, WarningNoSigCheck)
	}
	return warnings
}
