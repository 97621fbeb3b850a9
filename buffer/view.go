package buffer

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrNilPointer is returned when a non-empty buffer has a nil pointer.
	ErrNilPointer = errors.New("buffer: nil pointer")
	// ErrInvalidLength is returned for a negative length.
	ErrInvalidLength = errors.New("buffer: invalid length")
	// ErrUnknownKind is returned for an element kind outside the closed set.
	ErrUnknownKind = errors.New("buffer: unknown element kind")
	// ErrKindMismatch is returned when a buffer is read as the wrong kind.
	ErrKindMismatch = errors.New("buffer: element kind mismatch")
	// ErrNotContiguous is returned for strided memory where a contiguous
	// array is required.
	ErrNotContiguous = errors.New("buffer: array is not contiguous")
	// ErrMisaligned is returned when a pointer is not aligned for its kind.
	ErrMisaligned = errors.New("buffer: misaligned pointer")
)

// View is a borrowed, typed, contiguous region of caller memory.
type View struct {
	ptr  unsafe.Pointer
	n    int
	kind Kind
}

// Borrow describes n elements of kind at ptr, validating the description.
func Borrow(ptr unsafe.Pointer, n int, kind Kind) (View, error) {
	if !kind.Valid() {
		return View{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if n < 0 {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if n > 0 && ptr == nil {
		return View{}, ErrNilPointer
	}
	if uintptr(ptr)%uintptr(kind.Size()) != 0 {
		return View{}, fmt.Errorf("%w: %p for %s", ErrMisaligned, ptr, kind)
	}
	return View{ptr: ptr, n: n, kind: kind}, nil
}

// BorrowStrided is Borrow for memory described with an explicit byte
// stride. Only contiguous layouts, where the stride equals the element
// size, are accepted.
func BorrowStrided(ptr unsafe.Pointer, n, stride int, kind Kind) (View, error) {
	if kind.Valid() && n > 1 && stride != kind.Size() {
		return View{}, fmt.Errorf("%w: stride %d for %s", ErrNotContiguous, stride, kind)
	}
	return Borrow(ptr, n, kind)
}

// BorrowUnchecked describes n elements of kind at ptr without validation.
// A nil pointer, a wrong length or an unknown kind is undefined behaviour.
func BorrowUnchecked(ptr unsafe.Pointer, n int, kind Kind) View {
	return View{ptr: ptr, n: n, kind: kind}
}

// Of returns a view over a Go slice.
func Of[T Element](s []T) View {
	return View{ptr: unsafe.Pointer(unsafe.SliceData(s)), n: len(s), kind: KindOf[T]()}
}

// As returns the view as a typed slice sharing its memory.
func As[T Element](v View) ([]T, error) {
	if k := KindOf[T](); k != v.kind {
		return nil, fmt.Errorf("%w: view holds %s, read as %s", ErrKindMismatch, v.kind, k)
	}
	if v.n == 0 {
		return []T{}, nil
	}
	return unsafe.Slice((*T)(v.ptr), v.n), nil
}

// Len returns the number of elements.
func (v View) Len() int { return v.n }

// Kind returns the element kind.
func (v View) Kind() Kind { return v.kind }

// Pointer returns the address of the first element.
func (v View) Pointer() unsafe.Pointer { return v.ptr }

// ByteLen returns the size of the view in bytes.
func (v View) ByteLen() int { return v.n * v.kind.Size() }

// Bytes returns the raw byte image of the view, sharing its memory.
// Multi-byte elements are in native byte order.
func (v View) Bytes() []byte {
	if v.n == 0 || v.ptr == nil {
		return []byte{}
	}
	return unsafe.Slice((*byte)(v.ptr), v.ByteLen())
}

// NativeLittleEndian reports whether native byte images are little-endian,
// the byte order of every persisted format in this module.
func NativeLittleEndian() bool {
	var probe uint16 = 0x0001
	return *(*byte)(unsafe.Pointer(&probe)) == 1
}
