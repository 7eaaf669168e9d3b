package model

import "strings"

// Operation is one of the four host software operations.
type Operation string

const (
	OperationVIBInstall     Operation = "vib-install"
	OperationVIBUpdate      Operation = "vib-update"
	OperationProfileInstall Operation = "profile-install"
	OperationProfileUpdate  Operation = "profile-update"
)

// IsProfile reports whether the operation targets an image profile.
func (o Operation) IsProfile() bool {
	return o == OperationProfileInstall || o == OperationProfileUpdate
}

// ImageProfileSpec names an image profile within a depot.
type ImageProfileSpec struct {
	Name            string `json:"name"`
	Vendor          string `json:"vendor,omitempty"`
	AcceptanceLevel string `json:"acceptance_level,omitempty"`
}

// Target is what an operation applies: an image profile, a set of package specs, or VIB URLs.
type Target struct {
	Profile     *ImageProfileSpec `json:"profile,omitempty"`
	Packages    []PackageSpec     `json:"packages,omitempty"`
	PackageURLs []string          `json:"package_urls,omitempty"`
}

// IsEmpty reports whether nothing was targeted.
func (t Target) IsEmpty() bool {
	return t.Profile == nil && len(t.Packages) == 0 && len(t.PackageURLs) == 0
}

func (t Target) String() string {
	if t.Profile != nil {
		return "profile " + t.Profile.Name
	}
	names := make([]string, 0, len(t.Packages)+len(t.PackageURLs))
	for _, p := range t.Packages {
		names = append(names, p.String())
	}
	names = append(names, t.PackageURLs...)
	return strings.Join(names, ", ")
}
