package bench

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

const (
	modeAverageTime = "avgt"
	unitNanoPerOp   = "ns/op"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// WriteReport prints one row per scenario with its mean score.
func WriteReport(w io.Writer, runID string, results []Result) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Result of run "+runID+":")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Benchmark\tMode\tCnt\tScore\tUnits\t")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%s\t\n",
			res.Name, modeAverageTime, len(res.Iterations), res.Mean(), unitNanoPerOp,
		)
	}

	return tw.Flush()
}
