package xerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct {
	field string
}

func (e *customError) Error() string {
	return "bad " + e.field
}

func TestJoin(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, Join(nil, nil))
	})
	t.Run("Single", func(t *testing.T) {
		errTest := errors.New("test")
		require.Same(t, errTest, Join(nil, errTest))
	})
	t.Run("Many", func(t *testing.T) {
		var (
			errFirst  = errors.New("first")
			errSecond = &customError{field: "size"}
		)
		err := Join(errFirst, nil, errSecond)
		require.Equal(t, `["first","bad size"]`, err.Error())
		require.ErrorIs(t, err, errFirst)

		var target *customError
		require.True(t, As(err, &target))
		require.Equal(t, "size", target.field)
	})
}
