// Package testutil provides testing utilities for hpxgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG with helpers for generating sky
// positions, cell indices and value arrays.
//
// # Random Positions
//
//	rng := testutil.NewRNG(seed)
//	lon, lat := rng.LonLat()                  // uniform on the sphere
//	lons, lats := rng.LonLats(1000)           // batch
//	lon, lat = rng.Around(lon0, lat0, radius) // inside a disc
//
// # Cells and Values
//
//	hashes := rng.Hashes(depth, 1000)
//	values := rng.Float64s(12 << (2 * depth))
package testutil
