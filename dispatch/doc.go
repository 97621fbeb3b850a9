// Package dispatch runs element-wise batch transforms over index-aligned
// slices on a per-call set of goroutines.
//
// Work is split into contiguous index ranges before any goroutine starts,
// so each worker writes only to its own output slots and no locking is
// needed. Outputs are bit-identical for every worker count.
//
//	err := dispatch.Map2(workers, lon, lat, ipix, func(lon, lat float64) uint64 {
//	    return healpix.Hash(depth, lon, lat)
//	})
package dispatch
