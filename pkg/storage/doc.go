// Package storage stores template backups in S3-compatible object storage and
// validates binary content such as attachments.
//
// # Backends
//
// S3Storage talks to AWS S3 or any compatible service (MinIO, R2, rustfs) through
// aws-sdk-go-v2 with static credentials. MemoryStorage implements the same interface
// for tests and single-node development.
//
//	s, err := storage.New(storage.Config{
//		Bucket:    "templatewing",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//	info, err := s.Put(ctx, "backups/2026-10-18.json", bytes.NewReader(data), int64(len(data)), "application/json")
//	objects, err := s.List(ctx, "backups/")
//
// Keys are trimmed of surrounding slashes; empty keys and keys containing ".." or
// a backslash fail with ErrInvalidKey. Put detects the content type from the first 512 bytes
// when none is given.
//
// # Content validation
//
// DetectMIME and NormalizeMIME give a canonical media type without parameters.
// ValidateContent runs rules against decoded content and returns the first failure
// as a *ContentValidationError, which matches ErrInvalidContent:
//
//	err := storage.ValidateContent("report.pdf", data, storage.DetectMIME(data),
//		storage.NotEmpty(),
//		storage.MaxSize(10<<20),
//	)
//	var verr *storage.ContentValidationError
//	if errors.As(err, &verr) && verr.Code == storage.CodeTooLarge {
//		// reject the upload
//	}
//
// # Errors
//
// S3 API errors are mapped onto the package sentinels (ErrNotFound,
// ErrAccessDenied, ...) and match them via errors.Is. The SDK error is kept in the
// message only, so callers never depend on AWS types.
package storage
