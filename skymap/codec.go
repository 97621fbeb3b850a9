package skymap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/internal/hash"
)

// Option configures Encode, Save and SaveBlob.
type Option func(*options)

type options struct {
	compression Compression
}

// WithCompression selects the body compression. Bodies that do not shrink
// are stored uncompressed regardless.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(opts []Option) options {
	o := options{compression: CompressionNone}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Encode writes s to w.
func Encode(w io.Writer, s Skymap, opts ...Option) error {
	o := applyOptions(opts)
	if o.compression > CompressionZstd {
		return fmt.Errorf("%w: %s", ErrUnknownCompression, o.compression)
	}

	switch m := s.(type) {
	case *Map[uint8]:
		return encode(w, m, o)
	case *Map[int16]:
		return encode(w, m, o)
	case *Map[int32]:
		return encode(w, m, o)
	case *Map[int64]:
		return encode(w, m, o)
	case *Map[float32]:
		return encode(w, m, o)
	case *Map[float64]:
		return encode(w, m, o)
	}
	return fmt.Errorf("%w: %T", ErrUnknownKind, s)
}

func encode[T Number](w io.Writer, m *Map[T], o options) error {
	if m == nil {
		return fmt.Errorf("%w: nil map", ErrInvalidLength)
	}
	stored, c, err := compress(rawBytes(m.values), o.compression)
	if err != nil {
		return err
	}

	h := Header{
		Version:     Version,
		Kind:        KindOf[T](),
		Compression: c,
		Count:       uint64(len(m.values)),
		StoredSize:  uint64(len(stored)),
		Checksum:    hash.CRC32C(stored),
	}
	if _, err := w.Write(h.Encode()); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

// rawBytes returns the little-endian image of values, sharing memory on
// little-endian hosts.
func rawBytes[T Number](values []T) []byte {
	if buffer.NativeLittleEndian() {
		return buffer.Of(values).Bytes()
	}
	out, _ := binary.Append(nil, binary.LittleEndian, values)
	return out
}

// Decode reads one skymap from r.
func Decode(r io.Reader) (Skymap, error) {
	hdr := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, truncated(err)
	}
	h, err := DecodeHeader(hdr)
	if err != nil {
		return nil, err
	}

	size := uint64(h.Kind.Size())
	if h.Count > uint64(math.MaxInt)/size {
		return nil, fmt.Errorf("%w: %d values", ErrInvalidLength, h.Count)
	}
	count := int(h.Count)
	if _, err := DepthOf(count); err != nil {
		return nil, err
	}
	rawSize := count * int(size)
	if h.StoredSize > uint64(rawSize) {
		return nil, fmt.Errorf("%w: stored body of %d bytes exceeds raw size %d", ErrCorrupt, h.StoredSize, rawSize)
	}

	// Grow with the input instead of trusting the header with one allocation.
	var body bytes.Buffer
	if _, err := io.CopyN(&body, r, int64(h.StoredSize)); err != nil {
		return nil, truncated(err)
	}
	stored := body.Bytes()
	if got := hash.CRC32C(stored); got != h.Checksum {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrChecksumMismatch, got, h.Checksum)
	}

	raw, err := decompress(stored, h.Compression, rawSize)
	if err != nil {
		return nil, err
	}

	switch h.Kind {
	case U8:
		return decodeValues[uint8](raw)
	case I16:
		return decodeValues[int16](raw)
	case I32:
		return decodeValues[int32](raw)
	case I64:
		return decodeValues[int64](raw)
	case F32:
		return decodeValues[float32](raw)
	case F64:
		return decodeValues[float64](raw)
	}
	return nil, fmt.Errorf("%w: tag %d", ErrUnknownKind, uint8(h.Kind))
}

func decodeValues[T Number](raw []byte) (Skymap, error) {
	values := make([]T, len(raw)/KindOf[T]().Size())
	if buffer.NativeLittleEndian() {
		copy(buffer.Of(values).Bytes(), raw)
	} else if _, err := binary.Decode(raw, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return New(values)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}
