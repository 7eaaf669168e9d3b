package plan

import (
	"testing"

	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkg(name, version string) model.PackageSpec {
	return model.PackageSpec{Name: name, Version: version}
}

func TestBuildPlan_ProfileExample(t *testing.T) {
	target := []model.PackageSpec{pkg("A", "2"), pkg("B", "1")}
	installed := []model.PackageSpec{pkg("A", "1")}

	p, err := NewBuilder().BuildPlan(model.OperationProfileInstall, target, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, []model.Upgrade{{From: pkg("A", "1"), To: pkg("A", "2")}}, p.ToUpgrade)
	assert.Equal(t, []model.PackageSpec{pkg("B", "1")}, p.ToInstall)
	assert.Empty(t, p.ToRemove)
}

func TestBuildPlan_WouldRemove(t *testing.T) {
	target := []model.PackageSpec{pkg("A", "1")}
	installed := []model.PackageSpec{pkg("A", "1"), pkg("C", "1")}

	_, err := NewBuilder().BuildPlan(model.OperationProfileInstall, target, installed, model.InstallOptions{})
	require.ErrorIs(t, err, errors.ErrWouldRemovePackages)
	assert.Contains(t, err.Error(), ": C (pass --ok-to-remove")
}

func TestBuildPlan_OkToRemove(t *testing.T) {
	target := []model.PackageSpec{pkg("A", "1")}
	installed := []model.PackageSpec{pkg("D", "1"), pkg("A", "1"), pkg("C", "1")}

	p, err := NewBuilder().BuildPlan(model.OperationProfileInstall, target, installed, model.InstallOptions{OkToRemove: true})
	require.NoError(t, err)
	assert.Equal(t, []model.PackageSpec{pkg("C", "1"), pkg("D", "1")}, p.ToRemove)
	assert.Empty(t, p.ToInstall)
	assert.Empty(t, p.ToUpgrade)
}

func TestBuildPlan_ProfileUpdateKeepsExtras(t *testing.T) {
	target := []model.PackageSpec{pkg("A", "2")}
	installed := []model.PackageSpec{pkg("A", "1"), pkg("C", "1")}

	p, err := NewBuilder().BuildPlan(model.OperationProfileUpdate, target, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Empty(t, p.ToRemove)
	assert.Len(t, p.ToUpgrade, 1)
}

func TestBuildPlan_IdenticalSetsGiveEmptyPlan(t *testing.T) {
	set := []model.PackageSpec{pkg("A", "1"), pkg("B", "2.0.1")}

	for _, op := range []model.Operation{
		model.OperationProfileInstall, model.OperationProfileUpdate,
		model.OperationVIBInstall, model.OperationVIBUpdate,
	} {
		t.Run(string(op), func(t *testing.T) {
			p, err := NewBuilder().BuildPlan(op, set, set, model.InstallOptions{})
			require.NoError(t, err)
			assert.True(t, p.IsEmpty())
			assert.Empty(t, p.Retained)
		})
	}
}

func TestBuildPlan_Idempotent(t *testing.T) {
	target := []model.PackageSpec{pkg("Z", "3"), pkg("A", "2"), pkg("M", "1")}
	installed := []model.PackageSpec{pkg("A", "1"), pkg("M", "2"), pkg("Q", "1")}
	opts := model.InstallOptions{OkToRemove: true}
	b := NewBuilder()

	first, err := b.BuildPlan(model.OperationProfileInstall, target, installed, opts)
	require.NoError(t, err)
	second, err := b.BuildPlan(model.OperationProfileInstall, target, installed, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []model.PackageSpec{pkg("Z", "3"), pkg("A", "2"), pkg("M", "1")}, target, "input is not reordered")
}

func TestBuildPlan_Downgrades(t *testing.T) {
	target := []model.PackageSpec{pkg("A", "1")}
	installed := []model.PackageSpec{pkg("A", "2")}
	b := NewBuilder()

	p, err := b.BuildPlan(model.OperationProfileUpdate, target, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Empty(t, p.ToUpgrade)
	assert.Equal(t, []model.Upgrade{{From: pkg("A", "2"), To: pkg("A", "1")}}, p.Retained)
	assert.True(t, p.IsEmpty())

	p, err = b.BuildPlan(model.OperationProfileUpdate, target, installed, model.InstallOptions{AllowDowngrades: true})
	require.NoError(t, err)
	assert.Equal(t, []model.Upgrade{{From: pkg("A", "2"), To: pkg("A", "1")}}, p.ToUpgrade)
	assert.Empty(t, p.Retained)
}

func TestBuildPlan_ESXiReleaseNumbersUpgrade(t *testing.T) {
	installed := []model.PackageSpec{{Vendor: "VMW", Name: "nmlx5-core", Version: "4.19.16.8-9vmw.703.0.0.18644231"}}
	target := []model.PackageSpec{{Vendor: "VMW", Name: "nmlx5-core", Version: "4.19.16.8-10vmw.703.0.20.19193900"}}

	p, err := NewBuilder().BuildPlan(model.OperationProfileInstall, target, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, []model.Upgrade{{From: installed[0], To: target[0]}}, p.ToUpgrade)
	assert.Empty(t, p.Retained)
}

func TestBuildPlan_SinglePackage(t *testing.T) {
	installed := []model.PackageSpec{pkg("ntg3", "4.1.7.0-0vmw"), pkg("esx-ui", "2.1.1")}
	b := NewBuilder()

	p, err := b.BuildPlan(model.OperationVIBInstall, []model.PackageSpec{pkg("lsi-mr3", "7.720")}, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, []model.PackageSpec{pkg("lsi-mr3", "7.720")}, p.ToInstall)
	assert.Empty(t, p.ToUpgrade)
	assert.Empty(t, p.ToRemove, "VIB operations never remove")

	p, err = b.BuildPlan(model.OperationVIBUpdate, []model.PackageSpec{pkg("ntg3", "4.1.8.0-4vmw")}, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Empty(t, p.ToInstall)
	assert.Equal(t, []model.Upgrade{{From: pkg("ntg3", "4.1.7.0-0vmw"), To: pkg("ntg3", "4.1.8.0-4vmw")}}, p.ToUpgrade)
}

func TestBuildPlan_IdentityIgnoresVendor(t *testing.T) {
	target := []model.PackageSpec{{Vendor: "DEL", Name: "nvme-pcie", Version: "1.2.3.16"}}
	installed := []model.PackageSpec{{Vendor: "VMW", Name: "nvme-pcie", Version: "1.2.3.11"}}

	p, err := NewBuilder().BuildPlan(model.OperationProfileInstall, target, installed, model.InstallOptions{})
	require.NoError(t, err)
	assert.Empty(t, p.ToInstall)
	require.Len(t, p.ToUpgrade, 1)
	assert.Equal(t, "DEL", p.ToUpgrade[0].To.Vendor)
}

func TestBuildPlan_DuplicateTargetKeepsHighest(t *testing.T) {
	target := []model.PackageSpec{pkg("A", "1"), pkg("A", "3"), pkg("A", "2")}

	p, err := NewBuilder().BuildPlan(model.OperationVIBInstall, target, nil, model.InstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, []model.PackageSpec{pkg("A", "3")}, p.ToInstall)
}
