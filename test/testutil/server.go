// Package testutil holds fixtures shared by package tests: a fake online depot and offline bundle files.
package testutil

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glorpus-work/vibkit/internal/logger"
)

// DepotServer is an online depot serving a fixed set of files.
type DepotServer struct {
	Server *httptest.Server
	URL    string

	requests atomic.Int64
}

// DepotOption changes how a DepotServer answers.
type DepotOption func(*depotConfig)

type depotConfig struct {
	refuseHead bool
	status     int
	delay      time.Duration
}

// WithoutHead makes the server answer HEAD with 405, as some depot mirrors do.
func WithoutHead() DepotOption {
	return func(c *depotConfig) { c.refuseHead = true }
}

// WithStatus makes every request answer with status.
func WithStatus(status int) DepotOption {
	return func(c *depotConfig) { c.status = status }
}

// WithDelay holds every answer back for d, or until the client gives up.
func WithDelay(d time.Duration) DepotOption {
	return func(c *depotConfig) { c.delay = d }
}

// NewDepotServer serves files keyed by URL path. The server is closed when the test ends.
func NewDepotServer(t *testing.T, files map[string]string, opts ...DepotOption) *DepotServer {
	t.Helper()
	cfg := &depotConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ds := &DepotServer{}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.requests.Add(1)
		if cfg.delay > 0 {
			select {
			case <-time.After(cfg.delay):
			case <-r.Context().Done():
				return
			}
		}
		if cfg.status != 0 {
			w.WriteHeader(cfg.status)
			return
		}
		if cfg.refuseHead && r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))
	ds.URL = ds.Server.URL
	t.Cleanup(ds.Server.Close)
	return ds
}

// Requests returns how many requests the server has answered.
func (ds *DepotServer) Requests() int64 {
	return ds.requests.Load()
}

// IndexXML is a minimal depot index document.
const IndexXML = `<?xml version="1.0" encoding="utf-8"?>
<vendorList>
  <vendor>
    <name>VMware, Inc.</name>
    <code>VMW</code>
    <indexfile>vmw-depot-index.xml</indexfile>
  </vendor>
</vendorList>
`

// WriteOfflineBundle writes a zip offline bundle holding the given entries and returns its path.
func WriteOfflineBundle(t *testing.T, name string, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for entryName, content := range entries {
		f, err := zw.Create(entryName)
		if err != nil {
			t.Fatalf("failed to add %s to bundle: %v", entryName, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to bundle: %v", entryName, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish bundle: %v", err)
	}
	return WriteFile(t, name, buf.Bytes())
}

// DefaultBundleEntries are the entries of a well-formed offline bundle.
func DefaultBundleEntries() map[string]string {
	return map[string]string{
		"index.xml":                        IndexXML,
		"vendor-index.xml":                 "<vendor/>",
		"metadata.zip":                     "metadata",
		"vib20/ntg3/VMW_bootbank_ntg3.vib": "vib payload",
	}
}

// WriteFile writes content to name inside a per-test temporary directory and returns the path.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// CaptureLogs redirects log output into a buffer at debug level until the test ends.
func CaptureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetTestOutput(&buf)
	logger.InitLogger("debug", logger.FormatText)
	t.Cleanup(logger.UnsetTestOutput)
	return &buf
}
