// Package filesystem adapts afero filesystems to types.FS. NewOS wraps the
// host filesystem; NewAferoFS wraps anything else, usually a MemMapFs in
// tests. Move falls back to copy-and-remove when a rename crosses devices.
package filesystem
