package validation

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "validation failed for camera.device=3: cannot open device",
		New("camera.device", 3, "cannot open device").Error())
	assert.Equal(t, "validation failed for camera.frames: no frame after 5 reads",
		Newf("camera.frames", nil, "no frame after %d reads", 5).Error())
}

func TestAsSeesThroughWrapping(t *testing.T) {
	base := New("filters.median_kernel", 4, "must be odd")

	wrapped := errors.Wrap(fmt.Errorf("load settings: %w", base), "construct controller")

	found, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, found)
	assert.True(t, Is(wrapped))
}

func TestAsRejectsOtherErrors(t *testing.T) {
	_, ok := As(errors.New("disk full"))
	assert.False(t, ok)
	assert.False(t, Is(nil))
}
