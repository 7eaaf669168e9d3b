package executor_test

import (
	"strings"
	"testing"

	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeyValue_InstallationResult(t *testing.T) {
	out := `InstallationResult.Message.string=Operation finished successfully.
InstallationResult.RebootRequired.boolean=true
InstallationResult.VIBsInstalled.string[]=VMW_bootbank_nvme-pcie_1.2.3.16-1vmw.703.0.50.20036589,VMW_bootbank_lpfc_14.0.169.25-5vmw
InstallationResult.VIBsRemoved.string[]=VMW_bootbank_nvme-pcie_1.2.3.11-1vmw.703.0.20.19193900
InstallationResult.VIBsSkipped.string[]=
`
	records, err := executor.DecodeKeyValue(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Operation finished successfully.", r.Get("Message"))
	assert.True(t, r.Bool("RebootRequired"))
	assert.Len(t, r.List("VIBsInstalled"), 2)
	assert.Len(t, r.List("VIBsRemoved"), 1)
	assert.Empty(t, r.List("VIBsSkipped"))
}

func TestDecodeKeyValue_ListSplitsOnRepeatedField(t *testing.T) {
	out := `VIB.Name.string=esx-ui
VIB.Vendor.string=VMware
VIB.Version.string=2.1.1-20188605
VIB.Name.string=lsi-mr3
VIB.Vendor.string=VMW
VIB.Version.string=7.720.04.00-1OEM

VIB.Name.string=ntg3
VIB.Vendor.string=VMW
VIB.Version.string=4.1.8.0-4vmw
`
	records, err := executor.DecodeKeyValue(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "esx-ui", records[0].Get("Name"))
	assert.Equal(t, "lsi-mr3", records[1].Get("Name"))
	assert.Equal(t, "ntg3", records[2].Get("Name"))
	assert.Equal(t, "4.1.8.0-4vmw", records[2].Get("Version"))
}

func TestDecodeKeyValue_IgnoresNoise(t *testing.T) {
	records, err := executor.DecodeKeyValue(strings.NewReader("banner without separator\n\n\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
