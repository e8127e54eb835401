package material

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ftrvxmtrx/tga"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, h *Holder) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("material resolution did not complete")
	}
}

func TestColorNRGBAClamps(t *testing.T) {
	t.Parallel()

	got := DefaultFill.NRGBA()
	assert.Equal(t, color.NRGBA{R: 53, G: 174, B: 255, A: 255}, got)
	assert.Equal(t, color.NRGBA{}, Color{R: -1, G: -0.5}.NRGBA())
}

func TestFromNRGBA(t *testing.T) {
	t.Parallel()

	c := FromNRGBA(color.NRGBA{R: 255, G: 0, B: 51, A: 255})
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 0.2, c.B, 1e-6)
}

func TestColorResolverIsOpaque(t *testing.T) {
	t.Parallel()

	h, err := ColorResolver{}.Resolve(context.Background(), Color{R: 1, G: 1, B: 1, A: 0.2})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, h.ID)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, h.Base)
	assert.Nil(t, h.Texture)
}

func TestColorResolverCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ColorResolver{}.Resolve(ctx, DefaultFill)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextureResolverTGA(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 0, B: 100, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 100, G: 50, B: 0, A: 255})

	path := filepath.Join(t.TempDir(), "swatch.tga")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tga.Encode(f, img))
	require.NoError(t, f.Close())

	h, err := TextureResolver{Path: path}.Resolve(context.Background(), Color{A: 1})
	require.NoError(t, err)
	require.NotNil(t, h.Texture)
	assert.Equal(t, 2, h.Texture.Bounds().Dx())
	assert.Equal(t, color.NRGBA{R: 150, G: 25, B: 50, A: 255}, h.Base)
}

func TestTextureResolverMissingFile(t *testing.T) {
	t.Parallel()

	_, err := TextureResolver{Path: filepath.Join(t.TempDir(), "nope.tga")}.Resolve(context.Background(), DefaultFill)
	assert.Error(t, err)
}

func TestHolderResolves(t *testing.T) {
	t.Parallel()

	h := Resolve(context.Background(), ColorResolver{}, DefaultFill)
	waitDone(t, h)

	handle, state := h.Peek()
	assert.Equal(t, Ready, state)
	require.NotNil(t, handle)
	assert.NoError(t, h.Err())
}

func TestHolderPendingUntilResolverReturns(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	r := ResolverFunc(func(ctx context.Context, fill Color) (*Handle, error) {
		<-release
		return newHandle(fill, nil), nil
	})

	h := Resolve(context.Background(), r, DefaultFill)
	handle, state := h.Peek()
	assert.Nil(t, handle)
	assert.Equal(t, Unresolved, state)

	close(release)
	waitDone(t, h)
	_, state = h.Peek()
	assert.Equal(t, Ready, state)
}

func TestHolderFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("shader compile failed")
	h := Resolve(context.Background(), ResolverFunc(func(context.Context, Color) (*Handle, error) {
		return nil, boom
	}), DefaultFill)
	waitDone(t, h)

	handle, state := h.Peek()
	assert.Nil(t, handle)
	assert.Equal(t, Failed, state)
	assert.ErrorIs(t, h.Err(), boom)
}

func TestHolderNilHandleIsFailure(t *testing.T) {
	t.Parallel()

	h := Resolve(context.Background(), ResolverFunc(func(context.Context, Color) (*Handle, error) {
		return nil, nil
	}), DefaultFill)
	waitDone(t, h)

	_, state := h.Peek()
	assert.Equal(t, Failed, state)
	assert.ErrorIs(t, h.Err(), ErrUnresolved)
}

func TestNilHolder(t *testing.T) {
	t.Parallel()

	var h *Holder
	handle, state := h.Peek()
	assert.Nil(t, handle)
	assert.Equal(t, Unresolved, state)
	assert.NoError(t, h.Err())
	assert.Nil(t, h.Done())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unresolved", Unresolved.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(9).String())
}
