package depot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/glorpus-work/vibkit/pkg/errors"
)

// HTTPProber probes remote catalogs with HEAD, falling back to GET for servers that refuse HEAD.
type HTTPProber struct {
	client    *http.Client
	userAgent string
}

// NewHTTPProber creates a prober bounded by timeout. A non-empty proxy URL routes probes through it.
func NewHTTPProber(timeout time.Duration, proxy string) (*HTTPProber, error) {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid proxy URL %q", proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &HTTPProber{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}, nil
}

// Probe succeeds when the catalog answers with a 2xx status.
func (p *HTTPProber) Probe(ctx context.Context, catalogURL string) error {
	status, err := p.do(ctx, http.MethodHead, catalogURL)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = p.do(ctx, http.MethodGet, catalogURL)
		if err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("catalog answered HTTP %d", status)
	}
	return nil
}

func (p *HTTPProber) do(ctx context.Context, method, catalogURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, catalogURL, http.NoBody)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("catalog not accessible: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
