package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nolancacheux/webscrapping-clubs/internal/crawl"
	"github.com/nolancacheux/webscrapping-clubs/internal/reconcile"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunReport is the end-of-run summary written to the user.
type RunReport struct {
	RanAt      time.Time         `json:"ran_at"`
	Mode       string            `json:"mode"`
	District   string            `json:"district,omitempty"`
	Start      int               `json:"start,omitempty"`
	End        int               `json:"end,omitempty"`
	Stats      *crawl.Stats      `json:"stats,omitempty"`
	Population int               `json:"population,omitempty"`
	Reconcile  *reconcile.Report `json:"reconcile,omitempty"`
	Resolved   int               `json:"resolved,omitempty"`
	Excluded   int               `json:"excluded,omitempty"`
}

// WriteReport writes the run report in the requested format.
func WriteReport(w io.Writer, report *RunReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as indented JSON
func writeJSON(w io.Writer, report *RunReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as human-readable text
func writeText(w io.Writer, report *RunReport) error {
	switch report.Mode {
	case "resolve":
		fmt.Fprintf(w, "Districts resolved: %d valid, %d excluded\n", report.Resolved, report.Excluded)
		return nil
	case "district":
		fmt.Fprintf(w, "District crawl: %s\n", report.District)
	case "range":
		fmt.Fprintf(w, "Range crawl: scl %d to %d\n", report.Start, report.End)
	case "reconcile":
		// No crawl stats, fall through to the reconcile section.
	}

	if report.Stats != nil {
		s := report.Stats
		fmt.Fprintf(w, "  attempted: %d\n", s.Attempted)
		fmt.Fprintf(w, "  found:     %d\n", s.Found)
		fmt.Fprintf(w, "  skipped:   %d\n", s.Skipped)
		fmt.Fprintf(w, "  elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))
		fmt.Fprintf(w, "  rate:      %.2f pages/s\n", s.Rate())
		if report.Population > 0 {
			fmt.Fprintf(w, "  projected for %d identifiers: %s\n",
				report.Population, s.Extrapolate(report.Population).Round(time.Minute))
		}
	}

	if report.Reconcile != nil {
		r := report.Reconcile
		label := "Reconciliation"
		if r.DryRun {
			label = "Reconciliation (dry run, nothing written)"
		}
		fmt.Fprintf(w, "%s:\n", label)
		fmt.Fprintf(w, "  records:       %d\n", r.Records)
		fmt.Fprintf(w, "  matched:       %d\n", r.Matched)
		fmt.Fprintf(w, "  appended:      %d\n", r.Appended)
		fmt.Fprintf(w, "  cells filled:  %d\n", r.CellsFilled)
		fmt.Fprintf(w, "  failed writes: %d\n", r.FailedWrites)
		if len(r.Pending) > 0 {
			fmt.Fprintf(w, "  pending (not committed): %d\n", len(r.Pending))
			for _, name := range r.Pending {
				fmt.Fprintf(w, "    - %s\n", name)
			}
		}
	}
	return nil
}
