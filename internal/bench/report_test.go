package bench

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, "42", []Result{
		{
			Name: "Add/apd",
			Iterations: []IterationResult{
				{Ops: 10, Elapsed: 100 * time.Nanosecond},
				{Ops: 10, Elapsed: 300 * time.Nanosecond},
			},
		},
		{
			Name: "Quo/dec128-inplace",
			Iterations: []IterationResult{
				{Ops: 4, Elapsed: 1001 * time.Nanosecond},
			},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Result of run 42:")
	require.Equal(t, []string{"Benchmark", "Mode", "Cnt", "Score", "Units"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"Add/apd", "avgt", "2", "20.000", "ns/op"}, strings.Fields(lines[2]))
	require.Equal(t, []string{"Quo/dec128-inplace", "avgt", "1", "250.250", "ns/op"}, strings.Fields(lines[3]))

	// columns are aligned
	require.Equal(t, strings.Index(lines[1], "Mode"), strings.Index(lines[2], "avgt"))
}
