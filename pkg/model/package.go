package model

import (
	"fmt"
	"strings"
	"unicode"
)

// PackageSpec identifies a VIB. Vendor and Version are optional; Name is required.
// ID carries the host's full VIB identifier when the spec came from a catalog or the host.
type PackageSpec struct {
	Vendor  string `json:"vendor,omitempty"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	ID      string `json:"id,omitempty"`
}

// specSeparator separates the parts of a textual package spec.
const specSeparator = ":"

// ParsePackageSpec parses name, name:version, vendor:name and vendor:name:version.
// A two-part spec is name:version when its second part starts with a digit, vendor:name otherwise.
func ParsePackageSpec(s string) (PackageSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PackageSpec{}, fmt.Errorf("empty package spec")
	}
	parts := strings.Split(s, specSeparator)
	for _, p := range parts {
		if p == "" {
			return PackageSpec{}, fmt.Errorf("empty component in package spec %q", s)
		}
	}

	switch len(parts) {
	case 1:
		return PackageSpec{Name: parts[0]}, nil
	case 2:
		if startsWithDigit(parts[1]) {
			return PackageSpec{Name: parts[0], Version: parts[1]}, nil
		}
		return PackageSpec{Vendor: parts[0], Name: parts[1]}, nil
	case 3:
		return PackageSpec{Vendor: parts[0], Name: parts[1], Version: parts[2]}, nil
	default:
		return PackageSpec{}, fmt.Errorf("too many components in package spec %q", s)
	}
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// vibIDBanks are the bank markers that appear in host VIB identifiers.
var vibIDBanks = map[string]struct{}{
	"bootbank": {},
	"locker":   {},
}

// ParseVIBID splits a host VIB identifier of the form vendor_bank_name_version.
func ParseVIBID(id string) (PackageSpec, error) {
	parts := strings.Split(id, "_")
	if len(parts) < 4 {
		return PackageSpec{}, fmt.Errorf("malformed VIB id %q", id)
	}
	if _, ok := vibIDBanks[parts[1]]; !ok {
		return PackageSpec{}, fmt.Errorf("malformed VIB id %q: unknown bank %q", id, parts[1])
	}
	return PackageSpec{
		Vendor:  parts[0],
		Name:    strings.Join(parts[2:len(parts)-1], "_"),
		Version: parts[len(parts)-1],
		ID:      id,
	}, nil
}

// Key is the identity used when comparing package sets: the name, ignoring vendor and version.
func (p PackageSpec) Key() string {
	return p.Name
}

// Matches reports whether a concrete catalog entry satisfies this spec.
func (p PackageSpec) Matches(entry PackageSpec) bool {
	if p.Name != entry.Name {
		return false
	}
	if p.Vendor != "" && p.Vendor != entry.Vendor {
		return false
	}
	if p.Version != "" && p.Version != entry.Version {
		return false
	}
	return true
}

// Qualified renders vendor:name, or name when the vendor is unknown.
func (p PackageSpec) Qualified() string {
	if p.Vendor == "" {
		return p.Name
	}
	return p.Vendor + specSeparator + p.Name
}

// String renders the spec in the same form ParsePackageSpec accepts.
func (p PackageSpec) String() string {
	if p.Version == "" {
		return p.Qualified()
	}
	return p.Qualified() + specSeparator + p.Version
}
