package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineError_Error_IncludesKindAndLocation(t *testing.T) {
	err := Errorf(ErrBadTopology, "cv=3", "parent index %d out of range", -2)
	require.Contains(t, err.Error(), "bad_topology")
	require.Contains(t, err.Error(), "cv=3")
	require.Contains(t, err.Error(), "parent index -2 out of range")
}

func TestEngineError_Error_OmitsLocationWhenEmpty(t *testing.T) {
	err := Errorf(ErrNumericFailure, "", "solve diverged")
	require.NotContains(t, err.Error(), "::")
}

func TestEngineError_Unwrap_ExposesUnderlyingError(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(ErrCollectiveFailure, "rank 2", cause)
	require.ErrorIs(t, err, cause)
}

func TestInternal_PanicsWithInternalInvariantError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		ee, ok := r.(*EngineError)
		require.True(t, ok)
		require.Equal(t, ErrInternalInvariant, ee.Kind)
	}()
	Internal("unreachable state: %d", 5)
}

func TestErrorKind_String_UnknownKindFallsBackToNumericForm(t *testing.T) {
	require.Equal(t, "error_kind(99)", ErrorKind(99).String())
}
