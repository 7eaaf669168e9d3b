// Package catalog reads depot metadata through the host's own list operations and resolves package
// specs against it. Nothing here mutates a host.
package catalog

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/archive"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// BundleInspector checks a local offline bundle.
type BundleInspector interface {
	Inspect(ctx context.Context, bundlePath string) (archive.BundleInfo, error)
}

// Reader lists depot contents. Depot references handed to the list methods must carry a location the
// host can read.
type Reader struct {
	exec      executor.Executor
	inspector BundleInspector
	proxy     string
}

// NewReader creates a Reader that lists through exec and fetches through proxy when set.
func NewReader(exec executor.Executor, inspector BundleInspector, proxy string) *Reader {
	return &Reader{exec: exec, inspector: inspector, proxy: proxy}
}

// Verify checks a local offline bundle before it leaves this machine. Remote catalogs pass unchecked.
func (r *Reader) Verify(ctx context.Context, depot model.DepotReference) error {
	if depot.IsRemote() {
		return nil
	}
	info, err := r.inspector.Inspect(ctx, depot.Location)
	if err != nil {
		return errors.ErrDepotUnreadableWithDetails(depot.Location, err)
	}
	logger.Debug("Offline bundle verified", logger.Fields{"depot": depot.Location, "entries": info.Entries, "vibs": len(info.VIBs)})
	return nil
}

// ListProfiles returns the depot's image profiles sorted by name.
func (r *Reader) ListProfiles(ctx context.Context, depot model.DepotReference) ([]model.ImageProfileSpec, error) {
	profiles, err := r.exec.ListProfiles(ctx, depot.Location, r.proxy)
	if err != nil {
		return nil, unreadable(depot, err)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// ListPackages returns the depot's VIBs sorted by name, vendor and version.
func (r *Reader) ListPackages(ctx context.Context, depot model.DepotReference) ([]model.PackageSpec, error) {
	packages, err := r.exec.ListPackages(ctx, depot.Location, r.proxy)
	if err != nil {
		return nil, unreadable(depot, err)
	}
	SortPackages(packages)
	return packages, nil
}

// RequireProfile returns the named profile or ErrProfileNotFound.
func (r *Reader) RequireProfile(ctx context.Context, depot model.DepotReference, name string) (model.ImageProfileSpec, error) {
	profiles, err := r.ListProfiles(ctx, depot)
	if err != nil {
		return model.ImageProfileSpec{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return model.ImageProfileSpec{}, errors.ErrProfileNotFoundWithName(name, depot.Location)
}

// ProfilePackages returns the VIBs that make up a profile.
func (r *Reader) ProfilePackages(ctx context.Context, depot model.DepotReference, profile string) ([]model.PackageSpec, error) {
	packages, err := r.exec.ProfilePackages(ctx, depot.Location, profile, r.proxy)
	if err != nil {
		return nil, unreadable(depot, err)
	}
	SortPackages(packages)
	return packages, nil
}

// ResolvePackages lists the depot once and resolves every spec against it.
func (r *Reader) ResolvePackages(ctx context.Context, depot model.DepotReference, specs []model.PackageSpec) ([]model.PackageSpec, error) {
	catalog, err := r.ListPackages(ctx, depot)
	if err != nil {
		return nil, err
	}
	resolved := make([]model.PackageSpec, 0, len(specs))
	for _, spec := range specs {
		entry, err := ResolvePackage(spec, catalog)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, entry)
	}
	return resolved, nil
}

// ResolvePackage picks the catalog entry a spec refers to. Several versions of one vendor's package resolve
// to the highest; matches from more than one vendor are ambiguous.
func ResolvePackage(spec model.PackageSpec, catalog []model.PackageSpec) (model.PackageSpec, error) {
	var matches []model.PackageSpec
	vendors := map[string]struct{}{}
	for _, entry := range catalog {
		if spec.Matches(entry) {
			matches = append(matches, entry)
			vendors[entry.Vendor] = struct{}{}
		}
	}

	switch {
	case len(matches) == 0:
		return model.PackageSpec{}, errors.ErrPackageNotFoundWithSpec(spec.String())
	case len(vendors) > 1:
		candidates := make([]string, 0, len(vendors))
		for v := range vendors {
			candidates = append(candidates, model.PackageSpec{Vendor: v, Name: spec.Name}.Qualified())
		}
		sort.Strings(candidates)
		return model.PackageSpec{}, errors.ErrAmbiguousPackageSpecWithCandidates(spec.String(), candidates)
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if model.CompareVersions(m.Version, best.Version) > 0 {
			best = m
		}
	}
	return best, nil
}

// SortPackages orders packages by name, vendor and version.
func SortPackages(packages []model.PackageSpec) {
	sort.SliceStable(packages, func(i, j int) bool {
		a, b := packages[i], packages[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Vendor != b.Vendor {
			return a.Vendor < b.Vendor
		}
		return model.CompareVersions(a.Version, b.Version) < 0
	})
}

// unreadable reports a failed listing as an unreadable depot unless the session itself broke.
func unreadable(depot model.DepotReference, err error) error {
	if stderrors.Is(err, errors.ErrExecutorSessionFailure) || stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.ErrDepotUnreadableWithDetails(depot.Location, err)
}
