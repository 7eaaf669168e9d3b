package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/glorpus-work/vibkit/pkg/config"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/executor"
	mock_executor "github.com/glorpus-work/vibkit/pkg/executor/mocks"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/glorpus-work/vibkit/test/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// useTestEnv points the CLI at an empty config, disables colours and installs host as the connection.
func useTestEnv(t *testing.T, host executor.Host, format string) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	noColor := true
	ConfigPath, NoColor, OutputFormat = &cfgPath, &noColor, &format
	color.NoColor = true
	testutil.CaptureLogs(t)

	connect := Connect
	Connect = func(_ context.Context, _ config.Settings, hc config.HostConfig) (executor.Host, error) {
		if host == nil {
			return nil, errors.ErrExecutorSessionFailureWithHost(hc.Address, fmt.Errorf("connection refused"))
		}
		return host, nil
	}
	t.Cleanup(func() {
		Connect = connect
		ConfigPath, NoColor, OutputFormat = nil, nil, nil
	})
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, progress bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&progress)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), progress.String(), err
}

func newHost(t *testing.T) *mock_executor.MockHost {
	host := mock_executor.NewMockHost(gomock.NewController(t))
	host.EXPECT().Name().Return("esx01.lab").AnyTimes()
	return host
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name    string
		flags   applyFlags
		op      model.Operation
		check   func(*testing.T, model.Target)
		wantErr error
	}{
		{
			name:  "profile",
			flags: applyFlags{depotFlags: depotFlags{depot: "https://depot.lab/index.xml"}, profile: "ESXi-8.0U1-standard"},
			op:    model.OperationProfileInstall,
			check: func(t *testing.T, target model.Target) {
				require.NotNil(t, target.Profile)
				assert.Equal(t, "ESXi-8.0U1-standard", target.Profile.Name)
			},
		},
		{
			name:  "vib specs",
			flags: applyFlags{depotFlags: depotFlags{localDepot: "b.zip"}, vibs: []string{"ntg3", "VMW:nvme-pcie:1.2.3"}},
			op:    model.OperationVIBUpdate,
			check: func(t *testing.T, target model.Target) {
				assert.Equal(t, []model.PackageSpec{
					{Name: "ntg3"},
					{Vendor: "VMW", Name: "nvme-pcie", Version: "1.2.3"},
				}, target.Packages)
			},
		},
		{
			name:    "bad vib spec",
			flags:   applyFlags{depotFlags: depotFlags{depot: "b.zip"}, vibs: []string{"a:b:c:d"}},
			op:      model.OperationVIBInstall,
			wantErr: errors.ErrInvalidPackageSpec,
		},
		{
			name:    "no depot",
			flags:   applyFlags{profile: "p"},
			op:      model.OperationProfileUpdate,
			wantErr: errors.ErrInvalidDepotReference,
		},
		{
			name:    "two depots",
			flags:   applyFlags{depotFlags: depotFlags{depot: "a.zip", remoteDepot: "https://depot.lab/index.xml"}, profile: "p"},
			op:      model.OperationProfileUpdate,
			wantErr: errors.ErrConflictingArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.flags.request(tt.op)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.op, req.Operation)
			tt.check(t, req.Target)
		})
	}
}

func TestRequest_DepotKind(t *testing.T) {
	f := applyFlags{depotFlags: depotFlags{localDepot: "bundle.zip", proxy: "http://proxy:3128"}, vibs: []string{"ntg3"}}
	req, err := f.request(model.OperationVIBInstall)
	require.NoError(t, err)
	assert.Equal(t, model.DepotLocalArchive, req.DepotKind)
	assert.Equal(t, "bundle.zip", req.Depot)
	assert.Equal(t, "http://proxy:3128", req.Options.Proxy)
}

func TestHint(t *testing.T) {
	unreachable := errors.ErrDepotUnreachableWithDetails("/bundles/missing.zip", "no such file")
	assert.Contains(t, Hint(unreachable), "bundle path exists")
	assert.Contains(t, Hint(errors.ErrDepotUnreadableWithDetails("b.zip", fmt.Errorf("truncated"))), "re-download")
	assert.Contains(t, Hint(fmt.Errorf("profile-install failed: %w", errors.ErrWouldRemovePackagesWithNames([]string{"C"}))), "--ok-to-remove")
	assert.Contains(t, Hint(errors.ErrExecutorSessionFailureWithHost("esx01", fmt.Errorf("timeout"))), "credentials")
	assert.Empty(t, Hint(fmt.Errorf("something else")))
}

func sampleReport() model.Report {
	return model.Report{
		Host:      "esx01.lab",
		Operation: model.OperationProfileInstall,
		Depot:     model.DepotReference{Kind: model.DepotRemote, Location: "https://depot.lab/index.xml"},
		Outcome:   model.OutcomeRebootRequired,
		Message:   model.OutcomeRebootRequired.Message(),
		Plan: &model.InstallationPlan{
			ToInstall: []model.PackageSpec{{Name: "B", Version: "1"}},
			ToUpgrade: []model.Upgrade{{From: model.PackageSpec{Name: "A", Version: "1"}, To: model.PackageSpec{Name: "A", Version: "2"}}},
			ToRemove:  []model.PackageSpec{{Name: "C", Version: "1"}},
			Retained:  []model.Upgrade{{From: model.PackageSpec{Name: "D", Version: "4"}, To: model.PackageSpec{Name: "D", Version: "3"}}},
		},
		Result: &model.InstallationResult{
			Installed:      []model.PackageSpec{{Name: "A", Version: "2"}, {Name: "B", Version: "1"}},
			Removed:        []model.PackageSpec{{Name: "C", Version: "1"}},
			RebootRequired: true,
		},
		Warnings: []string{model.WarningForce},
	}
}

func TestPrintReport_Text(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, sampleReport(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "Outcome:   applied; reboot required to activate")
	assert.Contains(t, out, "+ B:1")
	assert.Contains(t, out, "^ A 1 -> 2")
	assert.Contains(t, out, "- C:1")
	assert.Contains(t, out, "= D 4 kept, depot has 3 ("+retainedNote(model.OperationProfileInstall)+")")
	assert.Contains(t, out, "Result: 2 installed, 1 removed, 0 skipped")
	assert.Contains(t, out, "Warning: "+model.WarningForce)
}

func TestRetainedNote(t *testing.T) {
	assert.Equal(t, "use --allow-downgrades", retainedNote(model.OperationProfileUpdate))
	for _, op := range []model.Operation{model.OperationVIBInstall, model.OperationVIBUpdate, model.OperationProfileInstall} {
		note := retainedNote(op)
		assert.Contains(t, note, string(op))
		assert.Contains(t, note, "only changes this plan")
	}
}

func TestPrintReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, sampleReport(), FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "reboot-required", decoded["outcome"])
	assert.Equal(t, "remote", decoded["depot"].(map[string]interface{})["kind"])
}

func TestVIBInstall_RemoteDepot(t *testing.T) {
	depot := testutil.NewDepotServer(t, map[string]string{"/index.xml": testutil.IndexXML})
	catalogURL := depot.URL + "/index.xml"

	host := newHost(t)
	host.EXPECT().ListPackages(gomock.Any(), catalogURL, "").
		Return([]model.PackageSpec{{Vendor: "VMW", Name: "ntg3", Version: "4.1.8"}}, nil)
	host.EXPECT().InstalledPackages(gomock.Any()).
		Return([]model.PackageSpec{{Vendor: "VMW", Name: "ntg3", Version: "4.1.7"}}, nil)
	host.EXPECT().Apply(gomock.Any(), model.OperationVIBInstall, executor.Arguments{
		executor.KeyDepot:   {catalogURL},
		executor.KeyVIBName: {"ntg3"},
	}).Return(model.InstallationResult{
		Installed: []model.PackageSpec{{Vendor: "VMW", Name: "ntg3", Version: "4.1.8"}},
		Removed:   []model.PackageSpec{{Vendor: "VMW", Name: "ntg3", Version: "4.1.7"}},
	}, nil)
	host.EXPECT().Close().Return(nil)
	useTestEnv(t, host, FormatText)

	out, progress, err := run(t, NewVIBCmd(), "install", "--host", "esx01", "--remote-depot", catalogURL, "--vib", "ntg3")
	require.NoError(t, err)
	assert.Contains(t, out, "Outcome:   applied live")
	assert.Contains(t, out, "^ VMW:ntg3 4.1.7 -> 4.1.8")
	assert.Contains(t, progress, "invoking: vib-install")
	assert.Equal(t, int64(1), depot.Requests())
}

func TestProfileInstall_UnreachableDepotNeverTouchesHost(t *testing.T) {
	depot := testutil.NewDepotServer(t, map[string]string{})

	host := newHost(t)
	host.EXPECT().Close().Return(nil)
	useTestEnv(t, host, FormatText)

	_, _, err := run(t, NewProfileCmd(), "install", "--host", "esx01",
		"--depot", depot.URL+"/index.xml", "--profile", "ESXi-8.0U1-standard")
	assert.ErrorIs(t, err, errors.ErrDepotUnreachable)
	assert.ErrorIs(t, err, errors.ErrInvalidDepotReference)
}

func TestDepotProfiles_LocalBundleJSON(t *testing.T) {
	bundle := testutil.WriteOfflineBundle(t, "ESXi-8.0U1-depot.zip", testutil.DefaultBundleEntries())
	staged := "/vmfs/volumes/ds1/vibkit-staging-ESXi-8.0U1-depot.zip"

	host := newHost(t)
	host.EXPECT().Stage(gomock.Any(), bundle).Return(staged, nil)
	host.EXPECT().ListProfiles(gomock.Any(), staged, "").
		Return([]model.ImageProfileSpec{{Name: "ESXi-8.0U1-standard", Vendor: "VMware, Inc."}}, nil)
	host.EXPECT().Unstage(gomock.Any(), staged).Return(nil)
	host.EXPECT().Close().Return(nil)
	useTestEnv(t, host, FormatJSON)

	out, progress, err := run(t, NewDepotCmd(), "profiles", "--host", "esx01", "--local-depot", bundle)
	require.NoError(t, err)
	assert.Empty(t, progress)

	var contents struct {
		Depot struct {
			Kind     string `json:"kind"`
			Location string `json:"location"`
		} `json:"depot"`
		Profiles []model.ImageProfileSpec `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &contents))
	assert.Equal(t, "local-archive", contents.Depot.Kind)
	assert.Equal(t, bundle, contents.Depot.Location)
	require.Len(t, contents.Profiles, 1)
	assert.Equal(t, "ESXi-8.0U1-standard", contents.Profiles[0].Name)
}

func TestDepotCheck_SessionFailure(t *testing.T) {
	useTestEnv(t, nil, FormatText)

	_, _, err := run(t, NewDepotCmd(), "check", "--host", "esx01", "--depot", "https://depot.lab/index.xml")
	assert.ErrorIs(t, err, errors.ErrExecutorSessionFailure)
}

func TestVIBCommandsNeedHost(t *testing.T) {
	_, _, err := run(t, NewVIBCmd(), "update", "--depot", "https://depot.lab/index.xml", "--vib", "ntg3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}

func TestProfileHelpExplainsRemoval(t *testing.T) {
	cmd := NewProfileCmd()
	install, _, err := cmd.Find([]string{"install"})
	require.NoError(t, err)
	update, _, err := cmd.Find([]string{"update"})
	require.NoError(t, err)

	assert.Contains(t, install.Long, "needs --ok-to-remove")
	assert.Contains(t, update.Long, "never fails with")
	assert.Contains(t, update.Long, "--ok-to-remove is not needed")
}
