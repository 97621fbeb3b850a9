// Package mmap maps persisted skymap blobs read-only into memory.
//
//	m, err := mmap.Open("map.hpxm")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential) // whole-body decode
//	header, _ := m.Region(0, 32)
//
// Unix uses mmap(2) and madvise(2); Windows uses MapViewOfFile and ignores
// access hints. Byte slices obtained from a Mapping or Region are valid only
// until Close.
package mmap
