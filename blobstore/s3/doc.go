// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("skymaps/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	client := hpxgo.New()
//	m, err := client.ReadSkymapBlob(ctx, store, "planck-353.hpxm")
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads with CRC32C checksums for large maps
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
