package assert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test: contract broken")

func TestThat(t *testing.T) {
	require.NotPanics(t, func() {
		That(true, errTest, "never %s", "seen")
	})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errTest)
		require.Contains(t, err.Error(), "slot 7")
	}()
	That(false, errTest, "slot %d", 7)
}
