package model

// Upgrade is a version change of an installed package.
type Upgrade struct {
	From PackageSpec `json:"from"`
	To   PackageSpec `json:"to"`
}

// InstallationPlan is the client-side advisory view of what an operation will change.
// Entries are sorted by package name. A plan is never mutated once built.
type InstallationPlan struct {
	ToInstall []PackageSpec `json:"to_install"`
	ToUpgrade []Upgrade     `json:"to_upgrade"`
	ToRemove  []PackageSpec `json:"to_remove"`
	// Retained lists target packages older than what is installed, left alone because downgrades
	// were not allowed.
	Retained []Upgrade `json:"retained,omitempty"`
}

// IsEmpty reports whether the plan changes nothing.
func (p InstallationPlan) IsEmpty() bool {
	return len(p.ToInstall) == 0 && len(p.ToUpgrade) == 0 && len(p.ToRemove) == 0
}
