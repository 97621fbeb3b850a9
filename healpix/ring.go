package healpix

import "math"

// Ring number of the southmost corner of each base cell, in units of nside,
// and the base cell's longitude index.
var (
	faceRing = [NumBaseCells]int64{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
	facePhi  = [NumBaseCells]int64{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
)

// ToRing converts a NESTED hash to its RING index.
func ToRing(depth uint8, hash uint64) uint64 {
	face, ux, uy := decode(depth, hash)
	ix, iy := int64(ux), int64(uy)
	ns := int64(NSide(depth))
	nl4 := 4 * ns
	npix := 12 * ns * ns
	ncap := 2 * ns * (ns - 1)

	jr := faceRing[face]*ns - ix - iy - 1
	var nr, before, kshift int64
	switch {
	case jr < ns:
		nr = jr
		before = 2 * nr * (nr - 1)
	case jr > 3*ns:
		nr = nl4 - jr
		before = npix - 2*(nr+1)*nr
	default:
		nr = ns
		before = ncap + (jr-ns)*nl4
		kshift = (jr - ns) & 1
	}
	jp := (facePhi[face]*nr + ix - iy + 1 + kshift) >> 1
	if jp > nl4 {
		jp -= nl4
	}
	if jp < 1 {
		jp += nl4
	}
	return uint64(before + jp - 1)
}

// FromRing converts a RING index to its NESTED hash.
func FromRing(depth uint8, ring uint64) uint64 {
	ns := int64(NSide(depth))
	nl2 := 2 * ns
	nl4 := 4 * ns
	npix := 12 * ns * ns
	ncap := 2 * ns * (ns - 1)
	p := int64(ring)

	var iring, iphi, kshift, nr int64
	var face int
	switch {
	case p < ncap:
		iring = (1 + isqrt(1+2*p)) >> 1
		iphi = p + 1 - 2*iring*(iring-1)
		nr = iring
		face = int((iphi - 1) / nr)
	case p < npix-ncap:
		ip := p - ncap
		tmp := ip / nl4
		iring = tmp + ns
		iphi = ip - tmp*nl4 + 1
		kshift = (iring + ns) & 1
		nr = ns
		ire := iring - ns + 1
		irm := nl2 + 2 - ire
		ifm := (iphi - ire/2 + ns - 1) / ns
		ifp := (iphi - irm/2 + ns - 1) / ns
		switch {
		case ifp == ifm:
			face = int(ifp | 4)
		case ifp < ifm:
			face = int(ifp)
		default:
			face = int(ifm + 8)
		}
	default:
		ip := npix - p
		iring = (1 + isqrt(2*ip-1)) >> 1
		iphi = 4*iring + 1 - (ip - 2*iring*(iring-1))
		nr = iring
		iring = 2*nl2 - iring
		face = 8 + int((iphi-1)/nr)
	}

	irt := iring - faceRing[face]*ns + 1
	ipt := 2*iphi - facePhi[face]*nr - kshift - 1
	if ipt >= nl2 {
		ipt -= 8 * ns
	}
	ix := (ipt - irt) >> 1
	iy := (-ipt - irt) >> 1
	return encode(depth, face, uint64(ix), uint64(iy))
}

func isqrt(v int64) int64 {
	r := int64(math.Sqrt(float64(v)))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}
