package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, CodeFailure, ExitCodeOf(base))
	assert.Equal(t, CodeStatus, ExitCodeOf(Wrap(CodeStatus, base)))
	assert.Equal(t, CodeNotFound, ExitCodeOf(fmt.Errorf("outer: %w", Wrap(CodeNotFound, base))))
	assert.Equal(t, CodeFailure, ExitCodeOf(Wrap(0, base)), "non-positive codes normalise to 1")
}

func TestWrapKeepsCause(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(CodeUsage, base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, Wrap(CodeUsage, nil))
}
