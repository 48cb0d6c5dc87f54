package xerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackTraceError(t *testing.T) {
	for _, test := range []struct {
		error error
		text  string
	}{
		{
			error: WithStackTrace(fmt.Errorf("fmt.Errorf")),
			//nolint:lll
			text: "fmt.Errorf at `github.com/ydb-platform/decimal-bench/internal/xerrors.TestStackTraceError(stacktrace_test.go:17)`",
		},
		{
			error: Errorf("size %d", 12),
			//nolint:lll
			text: "size 12 at `github.com/ydb-platform/decimal-bench/internal/xerrors.TestStackTraceError(stacktrace_test.go:22)`",
		},
		{
			error: WithStackTrace(
				WithStackTrace(errors.New("errors.New")),
			),
			//nolint:lll
			text: "errors.New at `github.com/ydb-platform/decimal-bench/internal/xerrors.TestStackTraceError(stacktrace_test.go:28)` at `github.com/ydb-platform/decimal-bench/internal/xerrors.TestStackTraceError(stacktrace_test.go:27)`",
		},
	} {
		t.Run(test.text, func(t *testing.T) {
			require.Equal(t, test.text, test.error.Error())
		})
	}
}

func TestStackTraceNil(t *testing.T) {
	require.NoError(t, WithStackTrace(nil))
}

func TestStackTraceUnwrap(t *testing.T) {
	errTest := errors.New("test")
	err := WithStackTrace(fmt.Errorf("wrapped: %w", errTest))
	require.ErrorIs(t, err, errTest)
	require.True(t, Is(err, errors.New("other"), errTest))
}
