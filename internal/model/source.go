// Package model defines the data structures for coverage instrumentation.
package model

// Path represents a file system path.
type Path string

// File identifies a file on disk together with a content fingerprint.
type File struct {
	Path Path
	Hash string
}

// Source represents a JavaScript source file selected for instrumentation.
type Source struct {
	Origin *File
	// Rel is the path of Origin relative to the scan root. It names the file
	// in the runtime coverage store and in the output directory.
	Rel Path
}
