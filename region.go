package hpxgo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/coverage"
)

// Region is a sky region a coverage query can be run against. The
// implementations are Cone, EllipticalCone, Polygon, Box and Zone.
type Region interface {
	query(e Engine, depth, delta uint8) (*coverage.CellSet, error)
	regionName() string
}

// Cone is the disc of angular Radius around (Lon, Lat). Angles in radians.
type Cone struct {
	Lon, Lat, Radius float64
}

func (r Cone) query(e Engine, depth, delta uint8) (*coverage.CellSet, error) {
	return e.Cone(depth, delta, r.Lon, r.Lat, r.Radius)
}

func (Cone) regionName() string { return "cone" }

// EllipticalCone is the spherical ellipse with semi-major axis A and
// semi-minor axis B around (Lon, Lat), its major axis at position angle PA
// from north through east.
type EllipticalCone struct {
	Lon, Lat, A, B, PA float64
}

func (r EllipticalCone) query(e Engine, depth, delta uint8) (*coverage.CellSet, error) {
	return e.EllipticalCone(depth, delta, r.Lon, r.Lat, r.A, r.B, r.PA)
}

func (EllipticalCone) regionName() string { return "elliptical_cone" }

// Polygon is the spherical polygon with the given vertices, joined by great
// circle arcs. It must be smaller than a hemisphere.
type Polygon struct {
	Lon, Lat []float64
}

func (r Polygon) query(e Engine, depth, delta uint8) (*coverage.CellSet, error) {
	return e.Polygon(depth, delta, r.Lon, r.Lat)
}

func (Polygon) regionName() string { return "polygon" }

// Box is the box of half-sizes A, along position angle PA, and B,
// perpendicular to it, centered on (Lon, Lat).
type Box struct {
	Lon, Lat, A, B, PA float64
}

func (r Box) query(e Engine, depth, delta uint8) (*coverage.CellSet, error) {
	return e.Box(depth, delta, r.Lon, r.Lat, r.A, r.B, r.PA)
}

func (Box) regionName() string { return "box" }

// Zone is the longitude/latitude rectangle. LonMin > LonMax denotes a zone
// crossing the zero meridian.
type Zone struct {
	LonMin, LatMin, LonMax, LatMax float64
}

func (r Zone) query(e Engine, depth, delta uint8) (*coverage.CellSet, error) {
	return e.Zone(depth, delta, r.LonMin, r.LatMin, r.LonMax, r.LatMax)
}

func (Zone) regionName() string { return "zone" }

// Query returns the cells at depth overlapping region. Cells fully inside
// the region are merged into their largest fully covered ancestor.
func (c *Client) Query(region Region, depth uint8, opts ...CallOption) (*coverage.CellSet, error) {
	start := time.Now()
	name := "nil"
	if region != nil {
		name = region.regionName()
	}

	co, err := c.call(opts)
	var cs *coverage.CellSet
	if err == nil {
		if region == nil {
			err = fmt.Errorf("%w: nil region", ErrInvalidRegion)
		} else {
			cs, err = region.query(c.engine, depth, co.delta)
		}
	}

	cells := 0
	if cs != nil {
		cells = cs.Len()
	}
	c.metrics.RecordQuery(cells, time.Since(start), err)
	c.logger.LogQuery(context.Background(), name, depth, cells, err)
	return cs, err
}

// Search runs Query and materializes the result as columns: one row per
// hierarchical cell, or with flat set, one row per cell at depth.
func (c *Client) Search(region Region, depth uint8, flat bool, opts ...CallOption) (coverage.Columns, error) {
	cs, err := c.Query(region, depth, opts...)
	if err != nil {
		return coverage.Columns{}, err
	}
	if flat {
		return cs.Flat(depth)
	}
	return cs.Hierarchical(), nil
}

// Transferred is a coverage result whose columns are owned by the caller.
// It must be released exactly once.
type Transferred struct {
	Hash  buffer.Handle // uint64 cell indices
	Depth buffer.Handle // uint8 cell depths
	Full  buffer.Handle // bool, true when the cell is fully inside the region

	client *Client
}

// Len returns the number of rows.
func (t *Transferred) Len() int { return t.Hash.Len }

// Columns returns typed slices over the transferred memory, valid until
// Release.
func (t *Transferred) Columns() (coverage.Columns, error) {
	hash, err := buffer.Slice[uint64](t.Hash)
	if err != nil {
		return coverage.Columns{}, err
	}
	depth, err := buffer.Slice[uint8](t.Depth)
	if err != nil {
		return coverage.Columns{}, err
	}
	full, err := buffer.Slice[bool](t.Full)
	if err != nil {
		return coverage.Columns{}, err
	}
	return coverage.Columns{Hash: hash, Depth: depth, Full: full}, nil
}

// Release frees the three columns.
func (t *Transferred) Release() error {
	return errors.Join(
		t.client.Release(t.Hash.Token),
		t.client.Release(t.Depth.Token),
		t.client.Release(t.Full.Token),
	)
}

// SearchTransfer runs Search and hands the columns over to the caller. The
// transferred bytes count against the memory limit until released; when the
// limit would be exceeded nothing is transferred.
func (c *Client) SearchTransfer(region Region, depth uint8, flat bool, opts ...CallOption) (*Transferred, error) {
	cols, err := c.Search(region, depth, flat, opts...)
	if err != nil {
		return nil, err
	}

	t := &Transferred{client: c}
	if t.Hash, err = transfer(c, cols.Hash); err != nil {
		return nil, err
	}
	if t.Depth, err = transfer(c, cols.Depth); err != nil {
		_ = c.Release(t.Hash.Token)
		return nil, err
	}
	if t.Full, err = transfer(c, cols.Full); err != nil {
		_ = c.Release(t.Hash.Token)
		_ = c.Release(t.Depth.Token)
		return nil, err
	}
	return t, nil
}
