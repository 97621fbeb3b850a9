package hpxgo

import (
	"fmt"
	"math"

	"github.com/hupe1980/hpxgo/dispatch"
	"github.com/hupe1980/hpxgo/healpix"
)

// Neighbour slots per element written by Neighbours, in the order S, SE, E,
// SW, C, NE, W, NW, N.
const NeighbourSlots = 9

// VertexSlots is the number of corners per cell, in the order S, E, N, W.
const VertexSlots = 4

// NoNeighbour marks an absent neighbour or corner.
const NoNeighbour = healpix.NoNeighbour

func checkDepth(depth uint8) error {
	return healpix.CheckDepth(int(depth))
}

// checkEach validates elements in index order so the reported element does
// not depend on the worker count.
func checkEach(op string, n int, check func(i int) error) error {
	for i := range n {
		if err := check(i); err != nil {
			return &IndexError{Op: op, Index: i, cause: err}
		}
	}
	return nil
}

func checkLonLat(lon, lat float64) error {
	if !healpix.ValidLonLat(lon, lat) {
		return fmt.Errorf("%w: (%g, %g)", ErrInvalidCoordinate, lon, lat)
	}
	return nil
}

func checkOffset(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: %s = %g", ErrInvalidOffset, name, v)
	}
	return nil
}

// LonLatToHealpix writes the cell containing every position (lon[i], lat[i])
// at depth to hash[i]. dx and dy receive the position inside the cell, both
// in [0, 1]; either may be nil.
func (c *Client) LonLatToHealpix(depth uint8, lon, lat []float64, hash []uint64, dx, dy []float64, opts ...CallOption) error {
	const op = "lonlat_to_healpix"
	n := len(lon)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "lat", len(lat), n),
			checkLen(op, "hash", len(hash), n),
			checkOptLen(op, "dx", dx, n),
			checkOptLen(op, "dy", dy, n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return checkLonLat(lon[i], lat[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				h, x, y := e.Hash(depth, lon[i], lat[i])
				hash[i] = h
				if dx != nil {
					dx[i] = x
				}
				if dy != nil {
					dy[i] = y
				}
			}
		})
		return nil
	})
}

// LonLatToHealpixDepths is LonLatToHealpix with a depth per element.
func (c *Client) LonLatToHealpixDepths(depths []uint8, lon, lat []float64, hash []uint64, dx, dy []float64, opts ...CallOption) error {
	const op = "lonlat_to_healpix_depths"
	n := len(lon)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkLen(op, "depths", len(depths), n),
			checkLen(op, "lat", len(lat), n),
			checkLen(op, "hash", len(hash), n),
			checkOptLen(op, "dx", dx, n),
			checkOptLen(op, "dy", dy, n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error {
			return firstErr(checkDepth(depths[i]), checkLonLat(lon[i], lat[i]))
		}); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				h, x, y := e.Hash(depths[i], lon[i], lat[i])
				hash[i] = h
				if dx != nil {
					dx[i] = x
				}
				if dy != nil {
					dy[i] = y
				}
			}
		})
		return nil
	})
}

// HealpixToLonLat writes the position at offset (dx, dy) inside every cell
// to (lon[i], lat[i]). (0.5, 0.5) is the cell center.
func (c *Client) HealpixToLonLat(depth uint8, hash []uint64, dx, dy float64, lon, lat []float64, opts ...CallOption) error {
	const op = "healpix_to_lonlat"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkOffset("dx", dx),
			checkOffset("dy", dy),
			checkLen(op, "lon", len(lon), n),
			checkLen(op, "lat", len(lat), n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, hash[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				lon[i], lat[i] = e.Center(depth, hash[i], dx, dy)
			}
		})
		return nil
	})
}

// HealpixToLonLatDepths is HealpixToLonLat with a depth per element.
func (c *Client) HealpixToLonLatDepths(depths []uint8, hash []uint64, dx, dy float64, lon, lat []float64, opts ...CallOption) error {
	const op = "healpix_to_lonlat_depths"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkOffset("dx", dx),
			checkOffset("dy", dy),
			checkLen(op, "depths", len(depths), n),
			checkLen(op, "lon", len(lon), n),
			checkLen(op, "lat", len(lat), n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error {
			if err := checkDepth(depths[i]); err != nil {
				return err
			}
			return healpix.CheckHash(depths[i], hash[i])
		}); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				lon[i], lat[i] = e.Center(depths[i], hash[i], dx, dy)
			}
		})
		return nil
	})
}

// Vertices writes a path of 4*step points along the border of every cell,
// starting at the south corner and running through the east, north and west
// corners. lon and lat are row-major with 4*step points per cell. step 1
// yields the four corners.
func (c *Client) Vertices(depth uint8, hash []uint64, step int, lon, lat []float64, opts ...CallOption) error {
	const op = "vertices"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		// n*4*step must be addressable.
		if step <= 0 || step > math.MaxInt/(VertexSlots*max(n, 1)) {
			return fmt.Errorf("%w: %d", ErrInvalidStep, step)
		}
		width := VertexSlots * step
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "lon", len(lon), n*width),
			checkLen(op, "lat", len(lat), n*width),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, hash[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			path := make([]healpix.LonLat, width)
			for i := lo; i < hi; i++ {
				e.PathAlongEdges(depth, hash[i], step, path)
				row := i * width
				for j, p := range path {
					lon[row+j] = p.Lon
					lat[row+j] = p.Lat
				}
			}
		})
		return nil
	})
}

// Neighbours writes the 9 cells around every cell, itself included, in the
// order S, SE, E, SW, C, NE, W, NW, N. out is row-major with 9 slots per
// cell; absent neighbours are NoNeighbour.
func (c *Client) Neighbours(depth uint8, hash []uint64, out []int64, opts ...CallOption) error {
	const op = "neighbours"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "out", len(out), n*NeighbourSlots),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, hash[i]) }); err != nil {
			return err
		}

		e := c.engine
		return dispatch.Rows(workers, hash, out, NeighbourSlots, func(h uint64, row []int64) {
			nb := e.Neighbours(depth, h)
			copy(row, nb[:])
		})
	})
}

// ExternalNeighbours writes, for every cell, the cells at depth+delta just
// outside its border. edges is row-major with 4<<delta cells per input,
// laid out as the SE, NE, NW and SW edges; corners is row-major with the S,
// E, N and W corner cells per input, NoNeighbour where no cell touches the
// corner from outside.
func (c *Client) ExternalNeighbours(depth, delta uint8, hash, edges []uint64, corners []int64, opts ...CallOption) error {
	const op = "external_neighbours"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			healpix.CheckDepth(int(depth)+int(delta)),
		); err != nil {
			return err
		}
		width := healpix.NumExternalEdgeCells(delta)
		if err := firstErr(
			checkLen(op, "edges", len(edges), n*width),
			checkLen(op, "corners", len(corners), n*VertexSlots),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, hash[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				cs := e.ExternalEdge(depth, hash[i], delta, edges[i*width:(i+1)*width])
				copy(corners[i*VertexSlots:(i+1)*VertexSlots], cs[:])
			}
		})
		return nil
	})
}

// ToRing converts nested indices to the ring scheme.
func (c *Client) ToRing(depth uint8, hash, ring []uint64, opts ...CallOption) error {
	const op = "to_ring"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "ring", len(ring), n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, hash[i]) }); err != nil {
			return err
		}

		e := c.engine
		return dispatch.Map(workers, hash, ring, func(h uint64) uint64 { return e.ToRing(depth, h) })
	})
}

// FromRing converts ring-scheme indices to nested indices.
func (c *Client) FromRing(depth uint8, ring, hash []uint64, opts ...CallOption) error {
	const op = "from_ring"
	n := len(ring)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "hash", len(hash), n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, ring[i]) }); err != nil {
			return err
		}

		e := c.engine
		return dispatch.Map(workers, ring, hash, func(r uint64) uint64 { return e.FromRing(depth, r) })
	})
}

// HealpixToXY writes the projection-plane coordinates of every cell center.
func (c *Client) HealpixToXY(depth uint8, hash []uint64, x, y []float64, opts ...CallOption) error {
	const op = "healpix_to_xy"
	n := len(hash)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "x", len(x), n),
			checkLen(op, "y", len(y), n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return healpix.CheckHash(depth, hash[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				x[i], y[i] = e.CenterXY(depth, hash[i])
			}
		})
		return nil
	})
}

// LonLatToXY projects positions onto the HEALPix plane, x in [0, 8) and y
// in [-2, 2].
func (c *Client) LonLatToXY(lon, lat, x, y []float64, opts ...CallOption) error {
	const op = "lonlat_to_xy"
	n := len(lon)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkLen(op, "lat", len(lat), n),
			checkLen(op, "x", len(x), n),
			checkLen(op, "y", len(y), n),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return checkLonLat(lon[i], lat[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				x[i], y[i] = e.LonLatToXY(lon[i], lat[i])
			}
		})
		return nil
	})
}

// XYToLonLat is the inverse projection. Points outside the projection domain
// yield NaN in both outputs.
func (c *Client) XYToLonLat(x, y, lon, lat []float64, opts ...CallOption) error {
	const op = "xy_to_lonlat"
	n := len(x)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkLen(op, "y", len(y), n),
			checkLen(op, "lon", len(lon), n),
			checkLen(op, "lat", len(lat), n),
		); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				l, b, ok := e.XYToLonLat(x[i], y[i])
				if !ok {
					l, b = math.NaN(), math.NaN()
				}
				lon[i], lat[i] = l, b
			}
		})
		return nil
	})
}

// BilinearInterpolation writes, for every position, the 4 cells whose
// centers surround it and their bilinear weights. hash and weights are
// row-major with 4 slots per position; the weights of a row sum to 1.
func (c *Client) BilinearInterpolation(depth uint8, lon, lat []float64, hash []uint64, weights []float64, opts ...CallOption) error {
	const op = "bilinear_interpolation"
	n := len(lon)
	return c.batch(op, n, opts, func(workers int) error {
		if err := firstErr(
			checkDepth(depth),
			checkLen(op, "lat", len(lat), n),
			checkLen(op, "hash", len(hash), n*4),
			checkLen(op, "weights", len(weights), n*4),
		); err != nil {
			return err
		}
		if err := checkEach(op, n, func(i int) error { return checkLonLat(lon[i], lat[i]) }); err != nil {
			return err
		}

		e := c.engine
		dispatch.Run(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				cells, ws := e.Bilinear(depth, lon[i], lat[i])
				copy(hash[i*4:(i+1)*4], cells[:])
				copy(weights[i*4:(i+1)*4], ws[:])
			}
		})
		return nil
	})
}
