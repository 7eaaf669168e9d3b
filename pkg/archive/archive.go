// Package archive checks offline bundles before they are handed to a host.
package archive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mholt/archives"
)

// Offline bundle layout markers.
const (
	IndexFile = "index.xml"
	vibExt    = ".vib"
)

// BundleInfo summarizes an offline bundle.
type BundleInfo struct {
	Entries int
	// VIBs are the archive paths of the VIB payloads, sorted.
	VIBs []string
}

// Inspector reads offline bundles.
type Inspector struct{}

// NewInspector creates a new Inspector instance.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect verifies that bundlePath is a readable zip with a depot index at its root. Every entry is read
// in full so checksum mismatches surface here rather than on the host.
func (in *Inspector) Inspect(ctx context.Context, bundlePath string) (BundleInfo, error) {
	if err := in.identify(ctx, bundlePath); err != nil {
		return BundleInfo{}, err
	}

	fsys, err := archives.FileSystem(ctx, bundlePath, nil)
	if err != nil {
		return BundleInfo{}, fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	var (
		info     BundleInfo
		hasIndex bool
	)
	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if err := in.readEntry(fsys, p); err != nil {
			return err
		}
		info.Entries++
		if p == IndexFile {
			hasIndex = true
		}
		if strings.EqualFold(path.Ext(p), vibExt) {
			info.VIBs = append(info.VIBs, p)
		}
		return nil
	}
	if err := fs.WalkDir(fsys, ".", walkFn); err != nil {
		return BundleInfo{}, fmt.Errorf("failed to read archive: %w", err)
	}

	if !hasIndex {
		return BundleInfo{}, fmt.Errorf("not an offline bundle: %s missing at archive root", IndexFile)
	}
	sort.Strings(info.VIBs)
	return info, nil
}

// identify requires the file to be a zip archive.
func (in *Inspector) identify(ctx context.Context, bundlePath string) error {
	f, err := os.Open(bundlePath)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer func() { _ = f.Close() }()

	format, _, err := archives.Identify(ctx, "", f)
	if stderrors.Is(err, archives.NoMatch) {
		return fmt.Errorf("not a zip archive")
	}
	if err != nil {
		return fmt.Errorf("failed to identify archive: %w", err)
	}
	if _, ok := format.(archives.Zip); !ok {
		return fmt.Errorf("not a zip archive: found %s", format.Extension())
	}
	return nil
}

// readEntry reads one archive entry to the end.
func (in *Inspector) readEntry(fsys fs.FS, p string) error {
	f, err := fsys.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(io.Discard, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", p, err)
	}
	return nil
}
