// Package hpxgo runs HEALPix operations over large arrays in parallel.
//
// A Client fans per-element HEALPix geometry out over caller-supplied flat
// buffers, answers coverage queries for sky regions and reads, writes and
// draws skymaps: arrays holding one value per cell of a depth layer.
//
// # Quick Start
//
//	c, _ := hpxgo.New(hpxgo.WithWorkers(8))
//	defer c.Close()
//
//	hash := make([]uint64, len(lon))
//	err := c.LonLatToHealpix(10, lon, lat, hash, nil, nil)
//
// # Batch Transforms
//
// Every transform takes equal-length input slices and caller-allocated
// output slices. Fixed-width outputs are row-major: 9 slots per element for
// Neighbours, 4 for the corners of Vertices and BilinearInterpolation.
// Preconditions (depth, buffer lengths, element validity) are checked before
// any output is written; a failing call leaves the outputs untouched.
// Absent neighbours are encoded in-band as NoNeighbour (-1).
//
// The worker count is set with WithWorkers and overridden per call with
// Parallel. Results do not depend on it:
//
//	err = c.Neighbours(10, hash, out, hpxgo.Parallel(1))
//
// # Coverage Queries
//
//	cells, _ := c.Query(hpxgo.Cone{Lon: ra, Lat: dec, Radius: r}, 12)
//	flat, _ := c.Search(hpxgo.Polygon{Lon: lons, Lat: lats}, 12, true)
//
// SearchTransfer hands the result columns over to the caller, who must
// release them exactly once:
//
//	t, err := c.SearchTransfer(hpxgo.Zone{...}, 8, false)
//	defer t.Release()
//
// # Skymaps
//
//	s, _ := c.ReadSkymap("dust.hpx")
//	img, _ := c.Rasterize(s, 1024, skymap.WithGalactic(true))
//	_ = img.EncodePNG(w)
//
// Skymaps can also be kept in any blobstore.BlobStore (local disk, memory,
// S3, MinIO) configured with WithBlobStore; blob reads and writes honour
// the WithIOLimit throttle.
package hpxgo
