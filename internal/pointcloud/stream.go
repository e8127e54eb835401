package pointcloud

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Stream layout, little-endian:
//
//	"PQC1"
//	repeated: int64 id | uint32 float count | float32 × count
const streamMagic = "PQC1"

// MaxFloats bounds a single record so a corrupt count cannot trigger a huge
// allocation.
const MaxFloats = 1 << 26

var (
	ErrBadMagic  = errors.New("pointcloud: bad stream magic")
	ErrTruncated = errors.New("pointcloud: truncated record")
)

// Reader decodes samples from a stream.
type Reader struct {
	r       *bufio.Reader
	started bool
	hdr     [12]byte
	payload []byte
}

// NewReader wraps r. The magic is consumed on the first call to Next.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next sample, or io.EOF at a clean end of stream.
// Each returned sample owns its Points slice.
func (r *Reader) Next() (Sample, error) {
	if !r.started {
		var magic [4]byte
		if _, err := io.ReadFull(r.r, magic[:]); err != nil {
			if err == io.EOF {
				return Sample{}, io.EOF
			}
			return Sample{}, fmt.Errorf("%w: %v", ErrBadMagic, err)
		}
		if string(magic[:]) != streamMagic {
			return Sample{}, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
		}
		r.started = true
	}

	if _, err := io.ReadFull(r.r, r.hdr[:]); err != nil {
		if err == io.EOF {
			return Sample{}, io.EOF
		}
		return Sample{}, fmt.Errorf("%w: header: %v", ErrTruncated, err)
	}
	id := int64(binary.LittleEndian.Uint64(r.hdr[0:8]))
	n := binary.LittleEndian.Uint32(r.hdr[8:12])
	if n > MaxFloats {
		return Sample{}, fmt.Errorf("pointcloud: record %d declares %d floats (max %d)", id, n, MaxFloats)
	}

	size := int(n) * 4
	if cap(r.payload) < size {
		r.payload = make([]byte, size)
	}
	buf := r.payload[:size]
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return Sample{}, fmt.Errorf("%w: record %d payload: %v", ErrTruncated, id, err)
	}

	pts := make([]float32, n)
	for i := range pts {
		pts[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return Sample{ID: id, Points: pts}, nil
}

// Writer encodes samples to a stream.
type Writer struct {
	w       io.Writer
	started bool
	buf     []byte
}

// NewWriter writes the stream header on the first Write.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one record. Malformed samples are written as-is; validation
// belongs to the consumer.
func (w *Writer) Write(s Sample) error {
	if len(s.Points) > MaxFloats {
		return fmt.Errorf("pointcloud: sample %d has %d floats (max %d)", s.ID, len(s.Points), MaxFloats)
	}
	if !w.started {
		if _, err := io.WriteString(w.w, streamMagic); err != nil {
			return fmt.Errorf("pointcloud: write magic: %w", err)
		}
		w.started = true
	}

	size := 12 + len(s.Points)*4
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	buf := w.buf[:size]
	binary.LittleEndian.PutUint64(buf[0:8], uint64(s.ID))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(s.Points)))
	for i, v := range s.Points {
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(v))
	}
	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("pointcloud: write record %d: %w", s.ID, err)
	}
	return nil
}

// ReadFile loads every sample in a stream file.
func ReadFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointcloud: open %s: %w", path, err)
	}
	defer f.Close()

	var out []Sample
	r := NewReader(f)
	for {
		s, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("pointcloud: read %s: %w", path, err)
		}
		out = append(out, s)
	}
}

// WriteFile writes samples to a new stream file.
func WriteFile(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pointcloud: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	w := NewWriter(bw)
	for _, s := range samples {
		if err := w.Write(s); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("pointcloud: flush %s: %w", path, err)
	}
	return f.Close()
}
