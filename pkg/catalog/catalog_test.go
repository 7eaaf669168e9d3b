package catalog_test

import (
	"context"
	"testing"

	"github.com/glorpus-work/vibkit/pkg/archive"
	"github.com/glorpus-work/vibkit/pkg/catalog"
	"github.com/glorpus-work/vibkit/pkg/errors"
	mock_executor "github.com/glorpus-work/vibkit/pkg/executor/mocks"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/glorpus-work/vibkit/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var remoteDepot = model.DepotReference{Kind: model.DepotRemote, Location: "https://depot.lab/index.xml"}

func TestReader_ListProfilesSorted(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock_executor.NewMockExecutor(ctrl)
	exec.EXPECT().ListProfiles(gomock.Any(), remoteDepot.Location, "http://proxy:3128").Return([]model.ImageProfileSpec{
		{Name: "ESXi-8.0U1-standard"}, {Name: "ESXi-7.0U3-standard"},
	}, nil)

	r := catalog.NewReader(exec, archive.NewInspector(), "http://proxy:3128")
	profiles, err := r.ListProfiles(context.Background(), remoteDepot)
	require.NoError(t, err)
	assert.Equal(t, "ESXi-7.0U3-standard", profiles[0].Name)
	assert.Equal(t, "ESXi-8.0U1-standard", profiles[1].Name)
}

func TestReader_RequireProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock_executor.NewMockExecutor(ctrl)
	exec.EXPECT().ListProfiles(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ImageProfileSpec{
		{Name: "ESXi-7.0U3-standard"},
	}, nil).Times(2)

	r := catalog.NewReader(exec, archive.NewInspector(), "")
	p, err := r.RequireProfile(context.Background(), remoteDepot, "ESXi-7.0U3-standard")
	require.NoError(t, err)
	assert.Equal(t, "ESXi-7.0U3-standard", p.Name)

	_, err = r.RequireProfile(context.Background(), remoteDepot, "ESXi-7.0U3-no-tools")
	assert.ErrorIs(t, err, errors.ErrProfileNotFound)
	assert.NotErrorIs(t, err, errors.ErrDepotUnreachable)
	assert.NotErrorIs(t, err, errors.ErrDepotUnreadable)
}

func TestReader_ListingFailureIsUnreadable(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock_executor.NewMockExecutor(ctrl)
	exec.EXPECT().ListPackages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.ErrExecutorRejectedWithDiagnostic("[MetadataDownloadError] Could not download from depot"))

	r := catalog.NewReader(exec, archive.NewInspector(), "")
	_, err := r.ListPackages(context.Background(), remoteDepot)
	assert.ErrorIs(t, err, errors.ErrDepotUnreadable)
	assert.Contains(t, err.Error(), "MetadataDownloadError")
}

func TestReader_SessionFailureIsNotUnreadable(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock_executor.NewMockExecutor(ctrl)
	exec.EXPECT().ProfilePackages(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.ErrExecutorSessionFailureWithHost("esx01", context.DeadlineExceeded))

	r := catalog.NewReader(exec, archive.NewInspector(), "")
	_, err := r.ProfilePackages(context.Background(), remoteDepot, "p")
	assert.ErrorIs(t, err, errors.ErrExecutorSessionFailure)
	assert.NotErrorIs(t, err, errors.ErrDepotUnreadable)
}

func TestReader_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := catalog.NewReader(mock_executor.NewMockExecutor(ctrl), archive.NewInspector(), "")
	ctx := context.Background()

	good := testutil.WriteOfflineBundle(t, "good.zip", testutil.DefaultBundleEntries())
	require.NoError(t, r.Verify(ctx, model.DepotReference{Kind: model.DepotLocalArchive, Location: good}))

	corrupt := testutil.WriteFile(t, "corrupt.zip", []byte("definitely not a zip"))
	err := r.Verify(ctx, model.DepotReference{Kind: model.DepotLocalArchive, Location: corrupt})
	assert.ErrorIs(t, err, errors.ErrDepotUnreadable)
	assert.NotErrorIs(t, err, errors.ErrInvalidDepotReference)

	require.NoError(t, r.Verify(ctx, remoteDepot))
}

func TestReader_ResolvePackages(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock_executor.NewMockExecutor(ctrl)
	exec.EXPECT().ListPackages(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.PackageSpec{
		{Vendor: "VMW", Name: "ntg3", Version: "4.1.7.0-0vmw"},
		{Vendor: "VMW", Name: "ntg3", Version: "4.1.8.0-4vmw"},
		{Vendor: "VMware", Name: "esx-ui", Version: "2.1.1-20188605"},
	}, nil).Times(1)

	r := catalog.NewReader(exec, archive.NewInspector(), "")
	resolved, err := r.ResolvePackages(context.Background(), remoteDepot, []model.PackageSpec{
		{Name: "ntg3"}, {Name: "esx-ui"},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.PackageSpec{
		{Vendor: "VMW", Name: "ntg3", Version: "4.1.8.0-4vmw"},
		{Vendor: "VMware", Name: "esx-ui", Version: "2.1.1-20188605"},
	}, resolved)
}

func TestResolvePackage(t *testing.T) {
	catalogEntries := []model.PackageSpec{
		{Vendor: "VMW", Name: "nvme-pcie", Version: "1.2.3.11-1vmw"},
		{Vendor: "DEL", Name: "nvme-pcie", Version: "1.2.3.16-1OEM"},
		{Vendor: "VMW", Name: "lsi-mr3", Version: "7.720.04.00-1OEM"},
		{Vendor: "VMW", Name: "lsi-mr3", Version: "7.718.02.00-1vmw"},
		{Vendor: "VMW", Name: "nmlx5-core", Version: "4.19.16.8-10vmw.703.0.20.19193900"},
		{Vendor: "VMW", Name: "nmlx5-core", Version: "4.19.16.8-9vmw.703.0.0.18644231"},
	}

	tests := []struct {
		name     string
		spec     model.PackageSpec
		expected model.PackageSpec
		wantErr  error
	}{
		{name: "highest version of one vendor", spec: model.PackageSpec{Name: "lsi-mr3"}, expected: catalogEntries[2]},
		{name: "pinned version", spec: model.PackageSpec{Name: "lsi-mr3", Version: "7.718.02.00-1vmw"}, expected: catalogEntries[3]},
		{name: "release numbers compare numerically", spec: model.PackageSpec{Name: "nmlx5-core"}, expected: catalogEntries[4]},
		{name: "vendor qualified", spec: model.PackageSpec{Vendor: "DEL", Name: "nvme-pcie"}, expected: catalogEntries[1]},
		{name: "ambiguous across vendors", spec: model.PackageSpec{Name: "nvme-pcie"}, wantErr: errors.ErrAmbiguousPackageSpec},
		{name: "unknown package", spec: model.PackageSpec{Name: "qedentv"}, wantErr: errors.ErrPackageNotFound},
		{name: "unknown version", spec: model.PackageSpec{Name: "lsi-mr3", Version: "1.0"}, wantErr: errors.ErrPackageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.ResolvePackage(tt.spec, catalogEntries)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolvePackage_AmbiguityNamesCandidates(t *testing.T) {
	_, err := catalog.ResolvePackage(model.PackageSpec{Name: "nvme-pcie"}, []model.PackageSpec{
		{Vendor: "VMW", Name: "nvme-pcie", Version: "1"},
		{Vendor: "DEL", Name: "nvme-pcie", Version: "1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEL:nvme-pcie, VMW:nvme-pcie")
}

func TestSortPackages(t *testing.T) {
	packages := []model.PackageSpec{
		{Vendor: "VMW", Name: "nmlx5-core", Version: "4.19.16.8-10vmw.703.0.20.19193900"},
		{Vendor: "VMW", Name: "lsi-mr3", Version: "7.720.04.00-1OEM"},
		{Vendor: "VMW", Name: "nmlx5-core", Version: "4.19.16.8-9vmw.703.0.0.18644231"},
	}

	catalog.SortPackages(packages)

	assert.Equal(t, []string{
		"lsi-mr3 7.720.04.00-1OEM",
		"nmlx5-core 4.19.16.8-9vmw.703.0.0.18644231",
		"nmlx5-core 4.19.16.8-10vmw.703.0.20.19193900",
	}, []string{
		packages[0].Name + " " + packages[0].Version,
		packages[1].Name + " " + packages[1].Version,
		packages[2].Name + " " + packages[2].Version,
	})
}
