// Package types defines the data model shared by the organizer packages:
// the filesystem interface, the per-run request, move plans, per-file
// results and run statistics.
package types
