package pointcloud

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Sample{}.Validate())
	assert.NoError(t, Sample{Points: []float32{0, 0, 0, 1}}.Validate())

	err := Sample{ID: 7, Points: []float32{0, 0, 0}}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSample))
}

func TestSampleFeature(t *testing.T) {
	t.Parallel()

	s := Sample{Points: []float32{1, 2, 3, 0.5, 4, 5, 6, 0.25}}
	require.Equal(t, 2, s.FeatureCount())
	assert.Equal(t, Feature{X: 4, Y: 5, Z: 6, Confidence: 0.25}, s.Feature(1))
}

func TestStreamRoundTrip(t *testing.T) {
	t.Parallel()

	in := []Sample{
		{ID: 1, Points: []float32{0, 0, 0, 1}},
		{ID: 2},
		{ID: -3, Points: []float32{1.5, -2.5, 3.25, 0.1, 7, 8, 9, 0.9}},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, s := range in {
		require.NoError(t, w.Write(s))
	}

	r := NewReader(&buf)
	var out []Sample
	for {
		s, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, s)
	}

	// an empty record decodes to a zero-length, non-nil slice
	in[1].Points = []float32{}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := NewReader(bytes.NewReader(nil)).Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderBadMagic(t *testing.T) {
	t.Parallel()

	_, err := NewReader(bytes.NewReader([]byte("NOPE...."))).Next()
	assert.True(t, errors.Is(err, ErrBadMagic))
}

func TestReaderTruncatedPayload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Write(Sample{ID: 9, Points: []float32{1, 2, 3, 4}}))
	data := buf.Bytes()[:buf.Len()-3]

	_, err := NewReader(bytes.NewReader(data)).Next()
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestReadWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cloud.pqc")
	g := NewGenerator(42)
	g.Features = 10
	in := g.Take(5)

	require.NoError(t, WriteFile(path, in))
	out, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.pqc"))
	assert.Error(t, err)
}
