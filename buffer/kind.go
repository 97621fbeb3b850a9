package buffer

import "fmt"

// Kind is the element type of a buffer.
type Kind uint8

const (
	Invalid Kind = iota
	Uint8
	Int16
	Int32
	Int64
	Uint64
	Float32
	Float64
	Bool
)

var kindInfo = [...]struct {
	name string
	size int
}{
	Invalid: {"invalid", 0},
	Uint8:   {"uint8", 1},
	Int16:   {"int16", 2},
	Int32:   {"int32", 4},
	Int64:   {"int64", 8},
	Uint64:  {"uint64", 8},
	Float32: {"float32", 4},
	Float64: {"float64", 8},
	Bool:    {"bool", 1},
}

// Valid reports whether k is a known element kind.
func (k Kind) Valid() bool { return k > Invalid && int(k) < len(kindInfo) }

// Size returns the element width in bytes, 0 for an invalid kind.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kindInfo[k].size
}

func (k Kind) String() string {
	if int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Element is the set of Go types a buffer can hold.
type Element interface {
	uint8 | int16 | int32 | int64 | uint64 | float32 | float64 | bool
}

// KindOf returns the Kind of T.
func KindOf[T Element]() Kind {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return Uint8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case bool:
		return Bool
	}
	return Invalid
}
