// Package healpix is the reference geometry engine for the NESTED HEALPix
// scheme.
//
// Every function is a pure function of scalar (or small fixed-size) inputs
// and produces scalar (or small fixed-size) outputs. Nothing here allocates
// shared state, so all functions are safe for concurrent use. Batch
// execution, buffer handling and result materialization live in the root
// package and in the dispatch and coverage packages.
//
// # Conventions
//
//   - Longitudes and latitudes are in radians. Longitudes are normalized to
//     [0, 2π), latitudes lie in [-π/2, π/2].
//   - A depth is in [0, MaxDepth]; a depth-d layer has 12·4^d cells.
//   - Hashes are NESTED indices. ToRing and FromRing convert to and from the
//     RING scheme.
//   - Offsets (dx, dy) locate a point inside its cell, (0, 0) being the
//     South vertex and (1, 1) the North vertex.
//   - Fixed-width outputs use compass order: neighbours are S, SE, E, SW, C,
//     NE, W, NW, N; vertices and corners are S, E, N, W.
//
// # Coverage
//
// Cone, EllipticalCone, Polygon, Box and Zone return a *coverage.CellSet
// approximating the region: a cell is flagged full when it lies entirely
// inside the region and partial when it only overlaps it.
package healpix
