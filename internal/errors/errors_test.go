package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      New(TypeConfig, "", "invalid configuration"),
			expected: "invalid configuration",
		},
		{
			name:     "with code",
			err:      New(TypeConfig, "bad_root", "site root missing"),
			expected: "[bad_root] site root missing",
		},
		{
			name:     "with path",
			err:      New(TypeIO, "read_failed", "cannot read").WithPath("a/b.txt"),
			expected: "[read_failed] a/b.txt cannot read",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, TypeIO, "code", "message"))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, TypeIO, "read_failed", "cannot read file")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsType(err, TypeIO))
	assert.False(t, IsType(err, TypeConfig))
}

func TestDelegationError(t *testing.T) {
	cause := fmt.Errorf("exit status 128")
	err := &DelegationError{Path: "content/index.html.erb", Output: "fatal: bad object", Cause: cause}

	assert.Contains(t, err.Error(), "content/index.html.erb")
	assert.Contains(t, err.Error(), "fatal: bad object")
	assert.ErrorIs(t, err, cause)

	var de *DelegationError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "content/index.html.erb", de.Path)
}
