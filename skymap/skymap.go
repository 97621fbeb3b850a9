package skymap

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/healpix"
)

var (
	// ErrInvalidLength is returned when a value count is not 12*4^depth.
	ErrInvalidLength = errors.New("skymap: length is not 12*4^depth")
	// ErrUnknownKind is returned for an unrecognized element kind tag.
	ErrUnknownKind = errors.New("skymap: unknown element kind")
	// ErrInvalidMagic is returned when the input is not a skymap file.
	ErrInvalidMagic = errors.New("skymap: invalid magic number")
	// ErrUnsupportedVersion is returned for a newer format version.
	ErrUnsupportedVersion = errors.New("skymap: unsupported version")
	// ErrUnknownCompression is returned for an unrecognized compression tag.
	ErrUnknownCompression = errors.New("skymap: unknown compression")
	// ErrTruncated is returned when the input ends before the declared body.
	ErrTruncated = errors.New("skymap: truncated input")
	// ErrChecksumMismatch is returned when the stored body fails its CRC.
	ErrChecksumMismatch = errors.New("skymap: checksum mismatch")
	// ErrCorrupt is returned when a compressed body cannot be decoded.
	ErrCorrupt = errors.New("skymap: corrupt body")
)

// Kind is the persisted element kind tag.
type Kind uint8

const (
	U8 Kind = iota + 1
	I16
	I32
	I64
	F32
	F64
)

// Valid reports whether k is one of the six element kinds.
func (k Kind) Valid() bool { return k >= U8 && k <= F64 }

// BufferKind returns the buffer element kind holding k.
func (k Kind) BufferKind() buffer.Kind {
	switch k {
	case U8:
		return buffer.Uint8
	case I16:
		return buffer.Int16
	case I32:
		return buffer.Int32
	case I64:
		return buffer.Int64
	case F32:
		return buffer.Float32
	case F64:
		return buffer.Float64
	}
	return buffer.Invalid
}

// Size returns the element width in bytes.
func (k Kind) Size() int { return k.BufferKind().Size() }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return k.BufferKind().String()
}

func kindOfBuffer(k buffer.Kind) (Kind, bool) {
	for s := U8; s <= F64; s++ {
		if s.BufferKind() == k {
			return s, true
		}
	}
	return 0, false
}

// Number is the set of element types a skymap can hold.
type Number interface {
	uint8 | int16 | int32 | int64 | float32 | float64
}

// KindOf returns the tag of T.
func KindOf[T Number]() Kind {
	k, _ := kindOfBuffer(buffer.KindOf[T]())
	return k
}

// Skymap is a value store of one of the six element kinds. The only
// implementations are the *Map instantiations of this package.
type Skymap interface {
	Kind() Kind
	Depth() uint8
	Len() int
	// View borrows the values without copying.
	View() buffer.View
	// Value returns the value of a cell converted to float64.
	Value(hash uint64) float64

	sealed()
}

// Map is a skymap with element type T.
type Map[T Number] struct {
	values []T
	depth  uint8
}

// New wraps values, whose length must be 12*4^depth. The slice is not copied
// and must not be mutated while the map is in use.
func New[T Number](values []T) (*Map[T], error) {
	depth, err := DepthOf(len(values))
	if err != nil {
		return nil, err
	}
	return &Map[T]{values: values, depth: depth}, nil
}

// DepthOf returns the depth whose layer has n cells.
func DepthOf(n int) (uint8, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	d, ok := healpix.DepthOfNPix(uint64(n))
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	return d, nil
}

// FromView wraps a borrowed buffer as a skymap of the buffer's own kind.
// The view memory must outlive the returned value.
func FromView(v buffer.View) (Skymap, error) {
	switch v.Kind() {
	case buffer.Uint8:
		return fromView[uint8](v)
	case buffer.Int16:
		return fromView[int16](v)
	case buffer.Int32:
		return fromView[int32](v)
	case buffer.Int64:
		return fromView[int64](v)
	case buffer.Float32:
		return fromView[float32](v)
	case buffer.Float64:
		return fromView[float64](v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, v.Kind())
}

func fromView[T Number](v buffer.View) (Skymap, error) {
	values, err := buffer.As[T](v)
	if err != nil {
		return nil, err
	}
	return New(values)
}

func (m *Map[T]) Kind() Kind        { return KindOf[T]() }
func (m *Map[T]) Depth() uint8      { return m.depth }
func (m *Map[T]) Len() int          { return len(m.values) }
func (m *Map[T]) View() buffer.View { return buffer.Of(m.values) }

// Values returns the backing slice.
func (m *Map[T]) Values() []T { return m.values }

// At returns the value of a cell.
func (m *Map[T]) At(hash uint64) T { return m.values[hash] }

func (m *Map[T]) Value(hash uint64) float64 { return float64(m.values[hash]) }

func (*Map[T]) sealed() {}
