package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/glorpus-work/vibkit/pkg/executor"
	"github.com/glorpus-work/vibkit/pkg/model"
	"github.com/glorpus-work/vibkit/pkg/orchestrator"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	green   = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	outcome = map[model.Outcome]func(a ...interface{}) string{
		model.OutcomeDryRun:         cyan,
		model.OutcomeNoChanges:      green,
		model.OutcomeRebootRequired: color.New(color.FgYellow, color.Bold).SprintFunc(),
		model.OutcomeAppliedLive:    green,
	}
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport writes a report as text or JSON.
func printReport(w io.Writer, report model.Report, format string) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}

	paint := outcome[report.Outcome]
	if paint == nil {
		paint = bold
	}
	_, _ = fmt.Fprintf(w, "Host:      %s\n", report.Host)
	_, _ = fmt.Fprintf(w, "Operation: %s\n", report.Operation)
	_, _ = fmt.Fprintf(w, "Depot:     %s (%s)\n", report.Depot.Location, report.Depot.Kind)
	_, _ = fmt.Fprintf(w, "Outcome:   %s\n", paint(report.Message))

	if report.Plan != nil {
		printPlan(w, report.Operation, *report.Plan)
	}
	if report.Result != nil {
		r := report.Result
		_, _ = fmt.Fprintf(w, "\n%s %d installed, %d removed, %d skipped\n",
			bold("Result:"), len(r.Installed), len(r.Removed), len(r.Skipped))
		for _, p := range r.Installed {
			_, _ = fmt.Fprintf(w, "  installed %s\n", p)
		}
		for _, p := range r.Removed {
			_, _ = fmt.Fprintf(w, "  removed   %s\n", p)
		}
	}
	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", yellow("Warning:"), warning)
	}
	return nil
}

func printPlan(w io.Writer, op model.Operation, p model.InstallationPlan) {
	if p.IsEmpty() && len(p.Retained) == 0 {
		_, _ = fmt.Fprintf(w, "\n%s none\n", bold("Planned changes:"))
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", bold("Planned changes:"))
	for _, pkg := range p.ToInstall {
		_, _ = fmt.Fprintf(w, "  %s %s\n", green("+"), pkg)
	}
	for _, u := range p.ToUpgrade {
		_, _ = fmt.Fprintf(w, "  %s %s %s -> %s\n", cyan("^"), u.To.Qualified(), u.From.Version, u.To.Version)
	}
	for _, pkg := range p.ToRemove {
		_, _ = fmt.Fprintf(w, "  %s %s\n", red("-"), pkg)
	}
	for _, u := range p.Retained {
		_, _ = fmt.Fprintf(w, "  %s %s %s kept, depot has %s (%s)\n",
			yellow("="), u.From.Qualified(), u.From.Version, u.To.Version, retainedNote(op))
	}
}

// retainedNote says how a skipped downgrade could be applied. Only some host commands take the flag.
func retainedNote(op model.Operation) string {
	if executor.Supports(op, executor.KeyAllowDowngrades) {
		return "use --allow-downgrades"
	}
	return fmt.Sprintf("%s has no downgrade option on the host; --allow-downgrades only changes this plan", op)
}

// printContents writes a depot listing as tables or JSON.
func printContents(w io.Writer, contents orchestrator.DepotContents, format string, withPackages bool) error {
	if format == FormatJSON {
		return writeJSON(w, contents)
	}

	tw := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PROFILE\tVENDOR\tACCEPTANCE")
	for _, p := range contents.Profiles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Vendor, p.AcceptanceLevel)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !withPackages {
		return nil
	}

	_, _ = fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "VIB\tVERSION\tVENDOR")
	for _, p := range contents.Packages {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Version, p.Vendor)
	}
	return tw.Flush()
}
