// Package plan computes the client-side advisory plan of an operation: what would be installed,
// upgraded or removed. The host still resolves dependencies itself and has the final word.
package plan

import (
	"sort"

	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// Builder computes installation plans. It holds no state, so repeated calls with the same input give
// the same plan.
type Builder struct{}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildPlan compares the target package set with what is installed. Packages are identified by name.
//
// A profile install removes installed packages that are not in the profile, which fails with
// ErrWouldRemovePackages unless OkToRemove is set. A profile update and the VIB operations never remove
// anything. Target packages older than their installed counterpart are upgraded only with
// AllowDowngrades and are listed as retained otherwise.
func (b *Builder) BuildPlan(op model.Operation, target, installed []model.PackageSpec, opts model.InstallOptions) (model.InstallationPlan, error) {
	targetByName := indexByName(target)
	installedByName := indexByName(installed)

	var p model.InstallationPlan
	for _, name := range sortedNames(targetByName) {
		want := targetByName[name]
		have, ok := installedByName[name]
		if !ok {
			p.ToInstall = append(p.ToInstall, want)
			continue
		}
		switch cmp := model.CompareVersions(want.Version, have.Version); {
		case cmp == 0:
		case cmp > 0 || opts.AllowDowngrades:
			p.ToUpgrade = append(p.ToUpgrade, model.Upgrade{From: have, To: want})
		default:
			p.Retained = append(p.Retained, model.Upgrade{From: have, To: want})
		}
	}

	if op != model.OperationProfileInstall {
		return p, nil
	}

	var extra []string
	for _, name := range sortedNames(installedByName) {
		if _, ok := targetByName[name]; ok {
			continue
		}
		extra = append(extra, name)
		p.ToRemove = append(p.ToRemove, installedByName[name])
	}
	if len(extra) > 0 && !opts.OkToRemove {
		return model.InstallationPlan{}, errors.ErrWouldRemovePackagesWithNames(extra)
	}
	return p, nil
}

// indexByName keys packages by name. When a name repeats, the highest version wins.
func indexByName(packages []model.PackageSpec) map[string]model.PackageSpec {
	out := make(map[string]model.PackageSpec, len(packages))
	for _, p := range packages {
		if cur, ok := out[p.Key()]; ok && model.CompareVersions(cur.Version, p.Version) >= 0 {
			continue
		}
		out[p.Key()] = p
	}
	return out
}

func sortedNames(m map[string]model.PackageSpec) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
