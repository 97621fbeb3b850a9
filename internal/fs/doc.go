// Package fs abstracts the few file operations the skymap writer performs,
// so that tests can inject write, sync and rename failures.
//
// Production code uses [Default]; tests wrap it with [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: 32})
package fs
