// Package nsfs contains the core domain types and interfaces for an in-memory
// hierarchical namespace of directories and files.
//
// The tree itself lives in the filesystem package; transports (FUSE, HTTP, CLI)
// only ever talk to it through [Namespace] and the value types defined here.
package nsfs
