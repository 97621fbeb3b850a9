// Package skymap implements the value-store codec: depth-implicit arrays that
// map every HEALPix cell of one depth layer to a scalar value.
//
// A Skymap holds exactly one of six numeric element kinds. The kind is a
// runtime tag carried by the value; every operation switches on it once at
// entry and runs fully typed code underneath.
//
// # Persisted Format
//
// A file is a 32-byte little-endian header followed by the body:
//
//	0   magic "HPXM"
//	4   format version (uint16)
//	6   element kind tag
//	7   body compression (none, LZ4 block, zstd)
//	8   value count (uint64), always 12*4^depth
//	16  stored body size in bytes (uint64)
//	24  CRC32C of the stored body
//	28  reserved
//
// The body is the values in pixel-index order, little-endian. Depth is not
// stored; it is re-derived from the value count on load.
//
// # Usage
//
//	m, err := skymap.New(values) // len(values) == 12*4^depth
//	err = skymap.Save(m, "map.hpx", skymap.WithCompression(skymap.CompressionZstd))
//	s, err := skymap.Load("map.hpx")
//	img, err := skymap.Rasterize(s, 512, skymap.WithColorMap(skymap.Viridis))
//	err = img.EncodePNG(w)
package skymap
