package healpix

import (
	"errors"
	"fmt"
	"math"
)

// MaxDepth is the deepest supported layer. Depth 29 keeps 12·4^depth within
// 64 bits with room for the packing sentinel used by cell sets.
const MaxDepth = 29

// NumBaseCells is the number of depth-0 cells.
const NumBaseCells = 12

const (
	twoPi    = 2 * math.Pi
	halfPi   = math.Pi / 2
	fourOnPi = 4 / math.Pi
	piOnFour = math.Pi / 4
)

var (
	// ErrInvalidDepth is returned for depths outside [0, MaxDepth].
	ErrInvalidDepth = errors.New("healpix: invalid depth")
	// ErrInvalidHash is returned for hashes outside [0, NPix(depth)).
	ErrInvalidHash = errors.New("healpix: hash out of range")
	// ErrInvalidRegion is returned for malformed region parameters.
	ErrInvalidRegion = errors.New("healpix: invalid region")
)

// DepthError reports an out-of-range depth.
type DepthError struct {
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("healpix: invalid depth %d: must be in [0, %d]", e.Depth, MaxDepth)
}

func (e *DepthError) Unwrap() error { return ErrInvalidDepth }

// HashError reports a hash that is not valid at its depth.
type HashError struct {
	Depth uint8
	Hash  uint64
}

func (e *HashError) Error() string {
	return fmt.Sprintf("healpix: hash %d out of range at depth %d (max %d)", e.Hash, e.Depth, NPix(e.Depth)-1)
}

func (e *HashError) Unwrap() error { return ErrInvalidHash }

// CheckDepth validates a depth.
func CheckDepth(depth int) error {
	if depth < 0 || depth > MaxDepth {
		return &DepthError{Depth: depth}
	}
	return nil
}

// CheckHash validates a hash at the given (valid) depth.
func CheckHash(depth uint8, hash uint64) error {
	if hash >= NPix(depth) {
		return &HashError{Depth: depth, Hash: hash}
	}
	return nil
}

// NSide returns the number of cells along a base-cell side at depth.
func NSide(depth uint8) uint64 { return 1 << depth }

// NPix returns the number of cells in the depth layer.
func NPix(depth uint8) uint64 { return NumBaseCells << (2 * uint(depth)) }

// DepthOfNPix returns the depth whose layer has exactly n cells.
func DepthOfNPix(n uint64) (uint8, bool) {
	if n < NumBaseCells || n%NumBaseCells != 0 {
		return 0, false
	}
	q := n / NumBaseCells
	if q&(q-1) != 0 {
		return 0, false
	}
	tz := 0
	for q > 1 {
		q >>= 1
		tz++
	}
	if tz%2 != 0 || tz/2 > MaxDepth {
		return 0, false
	}
	return uint8(tz / 2), true
}

// CellArea returns the solid angle of one cell at depth, in steradians.
func CellArea(depth uint8) float64 {
	return 4 * math.Pi / float64(NPix(depth))
}

// spread interleaves zero bits between the bits of v.
func spread(v uint64) uint64 {
	v &= 0x00000000FFFFFFFF
	v = (v | v<<16) & 0x0000FFFF0000FFFF
	v = (v | v<<8) & 0x00FF00FF00FF00FF
	v = (v | v<<4) & 0x0F0F0F0F0F0F0F0F
	v = (v | v<<2) & 0x3333333333333333
	v = (v | v<<1) & 0x5555555555555555
	return v
}

// compact is the inverse of spread on the even bits of v.
func compact(v uint64) uint64 {
	v &= 0x5555555555555555
	v = (v | v>>1) & 0x3333333333333333
	v = (v | v>>2) & 0x0F0F0F0F0F0F0F0F
	v = (v | v>>4) & 0x00FF00FF00FF00FF
	v = (v | v>>8) & 0x0000FFFF0000FFFF
	v = (v | v>>16) & 0x00000000FFFFFFFF
	return v
}

// decode splits a nested hash into its base cell and in-face coordinates.
func decode(depth uint8, hash uint64) (face int, ix, iy uint64) {
	shift := 2 * uint(depth)
	face = int(hash >> shift)
	rest := hash & (1<<shift - 1)
	return face, compact(rest), compact(rest >> 1)
}

func encode(depth uint8, face int, ix, iy uint64) uint64 {
	return uint64(face)<<(2*uint(depth)) | spread(ix) | spread(iy)<<1
}

// normalizeLon maps any longitude into [0, 2π).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon, twoPi)
	if lon < 0 {
		lon += twoPi
	}
	if lon >= twoPi {
		lon = 0
	}
	return lon
}

// ValidLonLat reports whether lon is finite and lat lies in [-π/2, π/2].
func ValidLonLat(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) {
		return false
	}
	return lat >= -halfPi && lat <= halfPi
}
