// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible servers (Ceph, Garage,
// SeaweedFS) without any AWS SDK dependency.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "skymaps", minio.Config{
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Prefix:    "planck/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or wrap an existing client:
//
//	store := minio.NewStore(client, "skymaps", "planck/")
package minio
