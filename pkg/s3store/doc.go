// Package s3store stores beacon identity and session counters as small
// objects in Amazon S3 or any S3-compatible service (MinIO, R2).
//
// Every key maps to one object under Config.KeyPrefix whose body is the
// value. Missing objects (NoSuchKey, NotFound) read as absent.
//
//	store, err := s3store.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	t := tracker.New(store)
//
// Tests inject a mock client with WithS3Client.
package s3store
