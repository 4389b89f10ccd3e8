// Package model defines the data structures shared across the rewrite pipeline.
package model

// Path represents a file system path.
type Path string

// SourceFile represents a Python source file discovered for rewriting.
type SourceFile struct {
	// Path is the absolute or caller-relative location of the file.
	Path Path
	// ShortPath is the path relative to the scanned root, used for display.
	ShortPath Path
	// Hash is a stable fingerprint of the file contents at discovery time.
	Hash string
}

// RenameEntry is a single planned path rename.
type RenameEntry struct {
	OldPath Path `yaml:"old"`
	NewPath Path `yaml:"new"`
}
