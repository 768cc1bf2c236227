// Package testutil provides helpers for testing organizer components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem
//   - FaultFS: wraps any types.FS and fails chosen operations on chosen paths
//   - WriteTree / ListFiles: declare and inspect directory trees inline
//
// All test data should be defined inline, not in external files.
package testutil
