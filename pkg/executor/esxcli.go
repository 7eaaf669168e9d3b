package executor

import (
	"context"
	"strconv"
	"strings"

	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/errors"
	"github.com/glorpus-work/vibkit/pkg/model"
)

// Result and listing field names returned by esxcli.
const (
	fieldName            = "Name"
	fieldVendor          = "Vendor"
	fieldVersion         = "Version"
	fieldID              = "ID"
	fieldAcceptanceLevel = "AcceptanceLevel"
	fieldVIBs            = "VIBs"
	fieldMessage         = "Message"
	fieldRebootRequired  = "RebootRequired"
	fieldVIBsInstalled   = "VIBsInstalled"
	fieldVIBsRemoved     = "VIBsRemoved"
	fieldVIBsSkipped     = "VIBsSkipped"
)

// ESXCLI implements Executor on top of any Runner.
type ESXCLI struct {
	runner Runner
}

// NewESXCLI wraps a runner.
func NewESXCLI(runner Runner) *ESXCLI {
	return &ESXCLI{runner: runner}
}

func withDepot(args []string, depot, proxy string) []string {
	args = append(args, esxcliFlags[KeyDepot]+"="+depot)
	if proxy != "" {
		args = append(args, esxcliFlags[KeyProxy]+"="+proxy)
	}
	return args
}

// ListProfiles runs "software sources profile list".
func (e *ESXCLI) ListProfiles(ctx context.Context, depot, proxy string) ([]model.ImageProfileSpec, error) {
	records, err := e.runner.Run(ctx, withDepot([]string{"software", "sources", "profile", "list"}, depot, proxy))
	if err != nil {
		return nil, err
	}
	profiles := make([]model.ImageProfileSpec, 0, len(records))
	for _, r := range records {
		name := r.Get(fieldName)
		if name == "" {
			continue
		}
		profiles = append(profiles, model.ImageProfileSpec{
			Name:            name,
			Vendor:          r.Get(fieldVendor),
			AcceptanceLevel: r.Get(fieldAcceptanceLevel),
		})
	}
	return profiles, nil
}

// ListPackages runs "software sources vib list".
func (e *ESXCLI) ListPackages(ctx context.Context, depot, proxy string) ([]model.PackageSpec, error) {
	records, err := e.runner.Run(ctx, withDepot([]string{"software", "sources", "vib", "list"}, depot, proxy))
	if err != nil {
		return nil, err
	}
	return packagesFromRecords(records), nil
}

// ProfilePackages runs "software sources profile get" and decodes the profile's VIB ids.
func (e *ESXCLI) ProfilePackages(ctx context.Context, depot, profile, proxy string) ([]model.PackageSpec, error) {
	args := withDepot([]string{"software", "sources", "profile", "get"}, depot, proxy)
	args = append(args, esxcliFlags[KeyProfile]+"="+profile)
	records, err := e.runner.Run(ctx, args)
	if err != nil {
		return nil, err
	}
	var packages []model.PackageSpec
	for _, r := range records {
		packages = append(packages, specsFromIDs(r.List(fieldVIBs))...)
	}
	return packages, nil
}

// InstalledPackages runs "software vib list".
func (e *ESXCLI) InstalledPackages(ctx context.Context) ([]model.PackageSpec, error) {
	records, err := e.runner.Run(ctx, []string{"software", "vib", "list"})
	if err != nil {
		return nil, err
	}
	return packagesFromRecords(records), nil
}

// Apply runs the install or update command for op.
func (e *ESXCLI) Apply(ctx context.Context, op model.Operation, args Arguments) (model.InstallationResult, error) {
	cmd, err := Render(op, args)
	if err != nil {
		return model.InstallationResult{}, err
	}
	logger.Debug("Submitting esxcli command", logger.Fields{"command": strings.Join(cmd, " ")})

	records, err := e.runner.Run(ctx, cmd)
	if err != nil {
		return model.InstallationResult{}, err
	}
	if len(records) == 0 {
		return model.InstallationResult{}, errors.ErrExecutorRejectedWithDiagnostic("host returned no installation result")
	}
	r := records[0]
	return model.InstallationResult{
		Installed:      specsFromIDs(r.List(fieldVIBsInstalled)),
		Removed:        specsFromIDs(r.List(fieldVIBsRemoved)),
		Skipped:        specsFromIDs(r.List(fieldVIBsSkipped)),
		RebootRequired: r.Bool(fieldRebootRequired),
		Message:        r.Get(fieldMessage),
	}, nil
}

func packagesFromRecords(records []Record) []model.PackageSpec {
	packages := make([]model.PackageSpec, 0, len(records))
	for _, r := range records {
		name := r.Get(fieldName)
		if name == "" {
			continue
		}
		packages = append(packages, model.PackageSpec{
			Vendor:  r.Get(fieldVendor),
			Name:    name,
			Version: r.Get(fieldVersion),
			ID:      r.Get(fieldID),
		})
	}
	return packages
}

// specsFromIDs decodes VIB ids. An id that does not follow the vendor_bank_name_version shape is kept
// as a name-only spec so nothing the host reported is dropped.
func specsFromIDs(ids []string) []model.PackageSpec {
	specs := make([]model.PackageSpec, 0, len(ids))
	for _, id := range ids {
		spec, err := model.ParseVIBID(id)
		if err != nil {
			spec = model.PackageSpec{Name: id, ID: id}
		}
		specs = append(specs, spec)
	}
	return specs
}

// Get returns the first value of a field.
func (r Record) Get(field string) string {
	if vs := r[field]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// List returns all non-empty values of a field.
func (r Record) List(field string) []string {
	out := make([]string, 0, len(r[field]))
	for _, v := range r[field] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Bool parses a field as a boolean; anything unparsable is false.
func (r Record) Bool(field string) bool {
	b, err := strconv.ParseBool(r.Get(field))
	return err == nil && b
}
