package archive

import (
	"context"
	"os"
	"testing"

	"github.com/glorpus-work/vibkit/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_Inspect(t *testing.T) {
	bundle := testutil.WriteOfflineBundle(t, "ESXi-8.0U1-depot.zip", testutil.DefaultBundleEntries())

	info, err := NewInspector().Inspect(context.Background(), bundle)
	require.NoError(t, err)
	assert.Equal(t, 4, info.Entries)
	assert.Equal(t, []string{"vib20/ntg3/VMW_bootbank_ntg3.vib"}, info.VIBs)
}

func TestInspector_MissingIndex(t *testing.T) {
	bundle := testutil.WriteOfflineBundle(t, "driver.zip", map[string]string{
		"vib20/ntg3/VMW_bootbank_ntg3.vib": "vib payload",
	})

	_, err := NewInspector().Inspect(context.Background(), bundle)
	assert.ErrorContains(t, err, "not an offline bundle")
}

func TestInspector_NotAZip(t *testing.T) {
	bundle := testutil.WriteFile(t, "garbage.zip", []byte("this is not an archive at all"))

	_, err := NewInspector().Inspect(context.Background(), bundle)
	assert.ErrorContains(t, err, "not a zip archive")
}

func TestInspector_Truncated(t *testing.T) {
	bundle := testutil.WriteOfflineBundle(t, "truncated.zip", testutil.DefaultBundleEntries())
	data, err := os.ReadFile(bundle)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bundle, data[:len(data)/2], 0o600))

	_, err = NewInspector().Inspect(context.Background(), bundle)
	assert.Error(t, err)
}

func TestInspector_MissingFile(t *testing.T) {
	_, err := NewInspector().Inspect(context.Background(), "/nonexistent/bundle.zip")
	assert.ErrorContains(t, err, "failed to open archive file")
}
