// Package reports is the repository of generated artifacts.
//
// Handlers never touch the download directory directly; they go through the
// Store interface so the recomputed directory walk can later be replaced by an
// indexed store without changing the portal feature.
//
// # Implementations
//
//   - FileStore: a directory tree on local disk. List walks the tree on every call.
//   - ObjectStore: keys below a prefix in an S3/MinIO bucket.
//
// # Sections
//
// Listings group files by the name of their immediate parent directory. Files
// stored directly in the root belong to the "Other" section. Sections and the
// files inside them are sorted lexically:
//
//	placards/2024-07-01.pdf, placards/2024-07-02.pdf, summary.pdf
//	=> Other: [summary.pdf], placards: [2024-07-01.pdf, 2024-07-02.pdf]
//
// # Path safety
//
// Every name is canonicalized with utils.CleanRelative before use. Absolute
// paths and ".." segments are rejected with ErrInvalidPath; missing artifacts
// return ErrNotFound.
package reports
