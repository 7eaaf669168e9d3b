package depot_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/glorpus-work/vibkit/pkg/depot"
	mock_depot "github.com/glorpus-work/vibkit/pkg/depot/mocks"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/glorpus-work/vibkit/test/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		reference string
		kind      model.DepotKind
		wantErr   bool
	}{
		{reference: "https://hostupdate.vmware.com/software/VUM/PRODUCTION/main/vmw-depot-index.xml", kind: model.DepotRemote},
		{reference: "http://depot.lab/index.XML", kind: model.DepotRemote},
		{reference: "https://depot.lab/index.xml?token=abc", kind: model.DepotRemote},
		{reference: "/vmfs/volumes/datastore1/VMware-ESXi-7.0U3g-20328353-depot.zip", kind: model.DepotLocalArchive},
		{reference: `C:\bundles\ESXi-8.0U1-depot.ZIP`, kind: model.DepotLocalArchive},
		{reference: "https://depot.lab/bundle.zip", kind: model.DepotLocalArchive},
		{reference: "https://depot.lab/index.xml.gz", wantErr: true},
		{reference: "/tmp/ESXi-8.0U1.iso", wantErr: true},
		{reference: "https://depot.lab/", wantErr: true},
		{reference: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.reference, func(t *testing.T) {
			ref, err := depot.Classify(tt.reference)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ref.Kind)
			assert.Equal(t, tt.reference, ref.Location)
		})
	}
}

func TestLocate_RemoteProbesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mock_depot.NewMockProber(ctrl)
	const catalog = "https://depot.lab/index.xml"
	prober.EXPECT().Probe(gomock.Any(), catalog).Return(nil).Times(1)

	l := depot.NewLocator(afero.NewMemMapFs(), prober)
	ref, err := l.Locate(context.Background(), catalog)
	require.NoError(t, err)
	assert.True(t, ref.IsRemote())
}

func TestLocate_RemoteUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mock_depot.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(fmt.Errorf("catalog answered HTTP 404"))

	l := depot.NewLocator(afero.NewMemMapFs(), prober)
	_, err := l.Locate(context.Background(), "https://depot.lab/index.xml")
	assert.ErrorIs(t, err, errors.ErrDepotUnreachable)
	assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestLocate_RemoteNeedsHTTPURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := depot.NewLocator(afero.NewMemMapFs(), mock_depot.NewMockProber(ctrl))

	_, err := l.Locate(context.Background(), "/opt/depot/index.xml")
	assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)
	assert.NotErrorIs(t, err, errors.ErrDepotUnreachable)
}

func TestLocate_LocalArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bundles/ESXi-8.0U1-depot.zip", []byte("PK"), 0o644))
	require.NoError(t, fs.MkdirAll("/bundles/dir.zip", 0o755))

	l := depot.NewLocator(fs, mock_depot.NewMockProber(ctrl))

	ref, err := l.Locate(context.Background(), "/bundles/ESXi-8.0U1-depot.zip")
	require.NoError(t, err)
	assert.Equal(t, model.DepotLocalArchive, ref.Kind)

	_, err = l.Locate(context.Background(), "/bundles/missing.zip")
	assert.ErrorIs(t, err, errors.ErrDepotUnreachable)
	assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)

	_, err = l.Locate(context.Background(), "/bundles/dir.zip")
	assert.ErrorIs(t, err, errors.ErrDepotUnreachable)
}

func TestLocateAs(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bundles/b.zip", []byte("PK"), 0o644))
	l := depot.NewLocator(fs, mock_depot.NewMockProber(ctrl))

	_, err := l.LocateAs(context.Background(), "/bundles/b.zip", model.DepotRemote)
	assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)

	ref, err := l.LocateAs(context.Background(), "/bundles/b.zip", model.DepotLocalArchive)
	require.NoError(t, err)
	assert.Equal(t, model.DepotLocalArchive, ref.Kind)
}

func TestSelectReference(t *testing.T) {
	ref, kind, err := depot.SelectReference("https://d/index.xml", "", "")
	require.NoError(t, err)
	assert.Equal(t, "https://d/index.xml", ref)
	assert.Equal(t, model.DepotKind(0), kind)

	ref, kind, err = depot.SelectReference("", "", "/b.zip")
	require.NoError(t, err)
	assert.Equal(t, "/b.zip", ref)
	assert.Equal(t, model.DepotLocalArchive, kind)

	_, _, err = depot.SelectReference("", "https://d/index.xml", "/b.zip")
	assert.ErrorIs(t, err, errors.ErrConflictingArguments)
	assert.Contains(t, err.Error(), "--remote-depot and --local-depot")

	_, _, err = depot.SelectReference("", "", "")
	assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)
}

func TestHTTPProber(t *testing.T) {
	ctx := context.Background()

	t.Run("head ok", func(t *testing.T) {
		srv := testutil.NewDepotServer(t, map[string]string{"/index.xml": testutil.IndexXML})
		p, err := depot.NewHTTPProber(time.Second, "")
		require.NoError(t, err)
		require.NoError(t, p.Probe(ctx, srv.URL+"/index.xml"))
		assert.Equal(t, int64(1), srv.Requests())
	})

	t.Run("falls back to get", func(t *testing.T) {
		srv := testutil.NewDepotServer(t, map[string]string{"/index.xml": testutil.IndexXML}, testutil.WithoutHead())
		p, err := depot.NewHTTPProber(time.Second, "")
		require.NoError(t, err)
		require.NoError(t, p.Probe(ctx, srv.URL+"/index.xml"))
		assert.Equal(t, int64(2), srv.Requests())
	})

	t.Run("missing catalog", func(t *testing.T) {
		srv := testutil.NewDepotServer(t, map[string]string{})
		p, err := depot.NewHTTPProber(time.Second, "")
		require.NoError(t, err)
		assert.ErrorContains(t, p.Probe(ctx, srv.URL+"/index.xml"), "HTTP 404")
	})

	t.Run("server error", func(t *testing.T) {
		srv := testutil.NewDepotServer(t, nil, testutil.WithStatus(http.StatusBadGateway))
		p, err := depot.NewHTTPProber(time.Second, "")
		require.NoError(t, err)
		assert.ErrorContains(t, p.Probe(ctx, srv.URL+"/index.xml"), "HTTP 502")
	})

	t.Run("no answer within timeout", func(t *testing.T) {
		srv := testutil.NewDepotServer(t, map[string]string{"/index.xml": testutil.IndexXML},
			testutil.WithDelay(2*time.Second))
		p, err := depot.NewHTTPProber(200*time.Millisecond, "")
		require.NoError(t, err)

		start := time.Now()
		require.Error(t, p.Probe(ctx, srv.URL+"/index.xml"))
		assert.Less(t, time.Since(start), 2*time.Second)

		_, err = depot.NewLocator(afero.NewMemMapFs(), p).Locate(ctx, srv.URL+"/index.xml")
		assert.ErrorIs(t, err, errors.ErrDepotUnreachable)
	})

	t.Run("bad proxy", func(t *testing.T) {
		_, err := depot.NewHTTPProber(time.Second, "://nope")
		assert.Error(t, err)
	})
}

func TestLocate_EndToEnd(t *testing.T) {
	srv := testutil.NewDepotServer(t, map[string]string{"/depot/index.xml": testutil.IndexXML})
	p, err := depot.NewHTTPProber(time.Second, "")
	require.NoError(t, err)
	l := depot.NewLocator(afero.NewMemMapFs(), p)

	_, err = l.Locate(context.Background(), srv.URL+"/depot/index.xml")
	require.NoError(t, err)

	_, err = l.Locate(context.Background(), srv.URL+"/other/index.xml")
	assert.ErrorIs(t, err, errors.ErrDepotUnreachable)
}
