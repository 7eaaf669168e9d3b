//go:generate mockgen -destination=./mocks/locator.go . Prober

// Package depot classifies depot references and checks that they can be reached before anything is
// asked of a host.
package depot

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/spf13/afero"
)

// DefaultProbeTimeout bounds the reachability probe of a remote catalog.
const DefaultProbeTimeout = 10 * time.Second

const userAgent = "vibkit/1.0"

// Prober checks that a remote catalog answers.
type Prober interface {
	Probe(ctx context.Context, catalogURL string) error
}

// Locator classifies depot references and verifies they exist.
type Locator struct {
	fs     afero.Fs
	prober Prober
}

// NewLocator creates a Locator checking local archives on fs and remote catalogs with prober.
func NewLocator(fs afero.Fs, prober Prober) *Locator {
	return &Locator{fs: fs, prober: prober}
}

// Classify derives the depot kind from the extension of the final path or URL segment.
// It performs no I/O.
func Classify(reference string) (model.DepotReference, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return model.DepotReference{}, errors.ErrInvalidDepotReferenceWithDetails(reference, "empty reference")
	}

	segment := reference
	if u, err := url.Parse(reference); err == nil && isRemoteScheme(u.Scheme) {
		segment = u.Path
	}
	switch strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(segment, `\`, "/")))) {
	case model.RemoteCatalogExt:
		return model.DepotReference{Kind: model.DepotRemote, Location: reference}, nil
	case model.LocalArchiveExt:
		return model.DepotReference{Kind: model.DepotLocalArchive, Location: reference}, nil
	default:
		return model.DepotReference{}, errors.ErrInvalidDepotReferenceWithDetails(reference,
			"expected an index .xml catalog or a .zip offline bundle")
	}
}

func isRemoteScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// Locate classifies a reference and checks it: one probe for a remote catalog, one existence check for a
// local archive. It never contacts a host.
func (l *Locator) Locate(ctx context.Context, reference string) (model.DepotReference, error) {
	ref, err := Classify(reference)
	if err != nil {
		return model.DepotReference{}, err
	}

	switch ref.Kind {
	case model.DepotRemote:
		u, err := url.Parse(ref.Location)
		if err != nil || !isRemoteScheme(u.Scheme) || u.Host == "" {
			return model.DepotReference{}, errors.ErrInvalidDepotReferenceWithDetails(ref.Location,
				"a remote catalog must be an http(s) URL")
		}
		if err := l.prober.Probe(ctx, ref.Location); err != nil {
			return model.DepotReference{}, errors.ErrDepotUnreachableWithDetails(ref.Location, err.Error())
		}
	case model.DepotLocalArchive:
		info, err := l.fs.Stat(ref.Location)
		if err != nil {
			return model.DepotReference{}, errors.ErrDepotUnreachableWithDetails(ref.Location, "file does not exist")
		}
		if info.IsDir() {
			return model.DepotReference{}, errors.ErrDepotUnreachableWithDetails(ref.Location, "is a directory")
		}
	}

	logger.Debug("Depot located", logger.Fields{"depot": ref.Location, "kind": ref.Kind.String()})
	return ref, nil
}

// SelectReference picks the single depot reference out of the three mutually exclusive inputs and
// returns the kind the reference is required to have, or 0 when --depot leaves it to classification.
func SelectReference(depot, remote, local string) (string, model.DepotKind, error) {
	inputs := []struct {
		flag  string
		value string
		kind  model.DepotKind
	}{
		{"--depot", depot, 0},
		{"--remote-depot", remote, model.DepotRemote},
		{"--local-depot", local, model.DepotLocalArchive},
	}

	var given []string
	var reference string
	var kind model.DepotKind
	for _, in := range inputs {
		if in.value == "" {
			continue
		}
		given = append(given, in.flag)
		reference, kind = in.value, in.kind
	}

	switch len(given) {
	case 0:
		return "", 0, errors.ErrInvalidDepotReferenceWithDetails("", "one of --depot, --remote-depot or --local-depot is required")
	case 1:
		return reference, kind, nil
	default:
		return "", 0, errors.ErrConflictingArgumentsWithDetails(
			fmt.Sprintf("only one depot may be given, got %s", strings.Join(given, " and ")))
	}
}

// LocateAs locates a reference and additionally requires it to be of kind want. A zero want accepts
// either kind.
func (l *Locator) LocateAs(ctx context.Context, reference string, want model.DepotKind) (model.DepotReference, error) {
	if want != 0 {
		ref, err := Classify(reference)
		if err != nil {
			return model.DepotReference{}, err
		}
		if ref.Kind != want {
			return model.DepotReference{}, errors.ErrInvalidDepotReferenceWithDetails(reference,
				fmt.Sprintf("expected a %s depot, got a %s one", want, ref.Kind))
		}
	}
	return l.Locate(ctx, reference)
}
