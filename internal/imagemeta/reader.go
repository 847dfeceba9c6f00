// Package imagemeta reads the image properties renamr can put into a name:
// pixel dimensions, EXIF capture and generic date tags, camera model, and the
// file modification time used as the last date fallback.
//
// Dimensions come from the registered image decoders (JPEG, PNG, GIF, WebP,
// BMP, TIFF) reading only the header. EXIF is optional; a file without it is
// not an error.
package imagemeta

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/danieljhkim/renamr/internal/planner"
)

// exifDateLayout is the layout of EXIF DateTime* tags.
const exifDateLayout = "2006:01:02 15:04:05"

// FileReader implements planner.MetadataReader against the real filesystem.
type FileReader struct {
	loc *time.Location
}

// NewFileReader creates a FileReader that interprets EXIF timestamps in the
// local time zone.
func NewFileReader() *FileReader {
	return &FileReader{loc: time.Local}
}

// ReadMetadata opens path, decodes its header and EXIF block, and closes it
// before returning.
func (r *FileReader) ReadMetadata(path string) (*planner.ImageMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}

	meta := &planner.ImageMetadata{
		Width:   cfg.Width,
		Height:  cfg.Height,
		ModTime: info.ModTime(),
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}

	x, err := exif.Decode(f)
	if err != nil {
		// No EXIF block, or one we cannot parse: fall back to mtime only.
		return meta, nil
	}

	meta.CapturedAt = r.dateTag(x, exif.DateTimeOriginal)
	meta.TaggedAt = r.dateTag(x, exif.DateTime)
	meta.CameraModel = stringTag(x, exif.Model)

	return meta, nil
}

// dateTag returns the parsed value of an EXIF date tag, or the zero time.
func (r *FileReader) dateTag(x *exif.Exif, name exif.FieldName) time.Time {
	s := stringTag(x, name)
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(exifDateLayout, s, r.loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// stringTag returns an EXIF ASCII tag with NUL padding and spaces trimmed.
func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
