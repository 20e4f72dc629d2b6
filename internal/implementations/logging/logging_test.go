package logging

import (
	"errors"
	"registrar/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepareArgs(t *testing.T) {
	err := errors.New("test")
	args := prepareArgs(logging.Entry("userID", 1), logging.Entry("err", err))

	require.Equal(t, []interface{}{"userID", 1, "err", err}, args)
}

func TestPrepareArgsEmpty(t *testing.T) {
	require.Empty(t, prepareArgs())
}
