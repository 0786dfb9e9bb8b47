package httperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromPassesTypedErrorThrough(t *testing.T) {
	err := NotFound("Could not find a place for the provided id!")

	got := From(err)
	require.Equal(t, 404, got.Code)
	require.Equal(t, "Could not find a place for the provided id!", got.Message)
}

func TestFromUnwrapsWrappedError(t *testing.T) {
	err := fmt.Errorf("resolving address: %w", UnprocessableEntity("Could not find location for the specified address."))

	got := From(err)
	require.Equal(t, 422, got.Code)
	require.Equal(t, "Could not find location for the specified address.", got.Message)
}

func TestFromHidesUnknownErrors(t *testing.T) {
	got := From(errors.New("connection reset by peer"))
	require.Equal(t, 500, got.Code)
	require.Equal(t, "An unknown error occurred!", got.Message)
}

func TestFromDefaultsMissingCode(t *testing.T) {
	got := From(&HTTPError{Message: "boom"})
	require.Equal(t, 500, got.Code)
}
