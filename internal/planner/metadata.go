package planner

import "time"

// ImageMetadata is what the planner needs to know about an image.
type ImageMetadata struct {
	// Width and Height are the pixel dimensions
	Width  int
	Height int

	// CapturedAt is the embedded original-capture timestamp (zero if absent)
	CapturedAt time.Time

	// TaggedAt is the embedded generic date tag (zero if absent)
	TaggedAt time.Time

	// CameraModel is the embedded camera model (empty if absent)
	CameraModel string

	// ModTime is the file modification time
	ModTime time.Time
}

// MetadataReader reads image metadata for the metadata naming modes.
// Implementations must release any file handle before returning.
type MetadataReader interface {
	ReadMetadata(path string) (*ImageMetadata, error)
}

// Timestamp returns the best available timestamp: capture tag, then generic
// date tag, then modification time.
func (m *ImageMetadata) Timestamp() time.Time {
	if !m.CapturedAt.IsZero() {
		return m.CapturedAt
	}
	if !m.TaggedAt.IsZero() {
		return m.TaggedAt
	}
	return m.ModTime
}
