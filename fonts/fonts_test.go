package fonts

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"
)

// Ensure is idempotent: repeated demands return the same outcome and
// leave the same faces registered.
func TestEnsureIdempotent(t *testing.T) {
	r := NewRegistry()
	err1 := r.Ensure()
	n := len(r.families)
	err2 := r.Ensure()

	require.Equal(t, err1, err2)
	require.Len(t, r.families, n)
}

func TestFamilyResolution(t *testing.T) {
	r := NewRegistry()
	if err := r.Ensure(); err != nil {
		t.Skipf("no usable DejaVu face: %v", err)
	}

	zero, err := r.Family("0")
	require.NoError(t, err)
	require.NotNil(t, zero)

	other, err := r.Family("A")
	require.NoError(t, err)
	require.NotNil(t, other)

	// Repeated resolution hands back the same family instances.
	again, err := r.Family("0")
	require.NoError(t, err)
	require.Same(t, zero, again)
}

func TestFaceSizesByDotHeight(t *testing.T) {
	r := NewRegistry()
	if err := r.Ensure(); err != nil {
		t.Skipf("no usable DejaVu face: %v", err)
	}

	small, err := r.Face("A", 10, canvas.Black)
	require.NoError(t, err)
	large, err := r.Face("A", 20, canvas.Black)
	require.NoError(t, err)

	// Double the dot height doubles the measured advance.
	require.InDelta(t, 2*small.TextWidth("MEASURE"), large.TextWidth("MEASURE"), 1e-6)
}

func TestFamilyWithoutFacesFails(t *testing.T) {
	r := NewRegistry()
	r.loaded = true
	r.err = nil // simulate a load that found nothing at all

	_, err := r.Family("0")
	require.Error(t, err)
}
