// Package model holds the value types that flow through a single vibkit invocation:
// depot references, package and profile specs, install options, plans and results.
// Every value is created fresh per invocation and never mutated after it is handed on.
package model

import "encoding/json"

// DepotKind classifies a depot reference.
type DepotKind int

const (
	// DepotRemote is an index.xml-rooted online catalog.
	DepotRemote DepotKind = iota + 1
	// DepotLocalArchive is a .zip offline bundle.
	DepotLocalArchive
)

// Depot reference extensions.
const (
	RemoteCatalogExt = ".xml"
	LocalArchiveExt  = ".zip"
)

func (k DepotKind) String() string {
	switch k {
	case DepotRemote:
		return "remote"
	case DepotLocalArchive:
		return "local-archive"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the kind by name.
func (k DepotKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// DepotReference is a classified depot location. Kind is derived solely from the extension of the final
// path or URL segment.
type DepotReference struct {
	Kind     DepotKind `json:"kind"`
	Location string    `json:"location"`
}

// IsRemote reports whether the depot is an online catalog.
func (d DepotReference) IsRemote() bool {
	return d.Kind == DepotRemote
}

func (d DepotReference) String() string {
	return d.Location
}
