package gopresentation

import (
	"fmt"
	"io"
	"os"
)

// Crop trims the source image before it is stretched into the shape. Each
// edge is in 1/1000 of a percent of the image size.
type Crop struct {
	Left, Top, Right, Bottom int
}

// DrawingShape is a picture backed by a file or by bytes read from one.
// The format is sniffed from the bytes at export; the path only identifies
// the picture for deduplication.
type DrawingShape struct {
	BaseShape
	path string
	data []byte
	// mimeType is a caller hint checked against the sniffed type.
	mimeType   string
	lockAspect bool
	// alpha is the alphaModFix amount, 0-100000; 0 is opaque.
	alpha int
	crop  Crop
}

func (d *DrawingShape) GetType() ShapeType          { return ShapeTypeDrawing }
func (d *DrawingShape) accept(v shapeVisitor) error { return v.visitDrawing(d) }

// NewDrawingShape creates an empty picture with its aspect ratio locked.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{lockAspect: true}
}

// SetPath sets the image file. It is read at export.
func (d *DrawingShape) SetPath(path string) *DrawingShape {
	d.path = path
	return d
}

func (d *DrawingShape) GetPath() string { return d.path }

// SetImageData sets the picture bytes with an optional MIME type hint.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data, d.mimeType = data, mimeType
	return d
}

func (d *DrawingShape) GetImageData() []byte { return d.data }
func (d *DrawingShape) GetMimeType() string  { return d.mimeType }

// SetImageFromFile reads the file now and keeps path as the identity.
func (d *DrawingShape) SetImageFromFile(path string) error {
	data, err := readImageFile(path)
	if err != nil {
		return err
	}
	d.path, d.data, d.mimeType = path, data, ""
	return nil
}

// SetResizeProportional locks or unlocks the aspect ratio in the editor.
func (d *DrawingShape) SetResizeProportional(v bool) *DrawingShape {
	d.lockAspect = v
	return d
}

func (d *DrawingShape) SetCrop(c Crop) *DrawingShape { d.crop = c; return d }
func (d *DrawingShape) GetCrop() Crop                { return d.crop }

// SetAlphaValue sets the alphaModFix amount, 0-100000.
func (d *DrawingShape) SetAlphaValue(a int) *DrawingShape {
	d.alpha = a
	return d
}

func (d *DrawingShape) GetAlphaValue() int { return d.alpha }

// MemoryDrawingShape is a picture whose bytes live in memory or come from a
// render callback at export, for example a plot drawn by another library.
// Two memory drawings are always separate media parts, even when their
// bytes match.
type MemoryDrawingShape struct {
	BaseShape
	data     []byte
	mimeType string
	render   func(w io.Writer) error
}

func (m *MemoryDrawingShape) GetType() ShapeType          { return ShapeTypeMemoryDrawing }
func (m *MemoryDrawingShape) accept(v shapeVisitor) error { return v.visitMemoryDrawing(m) }

func NewMemoryDrawingShape() *MemoryDrawingShape { return &MemoryDrawingShape{} }

// SetImageData sets static bytes and drops any render callback.
func (m *MemoryDrawingShape) SetImageData(data []byte, mimeType string) *MemoryDrawingShape {
	m.data, m.mimeType, m.render = data, mimeType, nil
	return m
}

// SetRenderFunc sets a callback that writes the bytes at export and drops
// any static bytes.
func (m *MemoryDrawingShape) SetRenderFunc(fn func(w io.Writer) error, mimeType string) *MemoryDrawingShape {
	m.render, m.mimeType, m.data = fn, mimeType, nil
	return m
}

// GetImageData returns the static bytes, nil when a callback is set.
func (m *MemoryDrawingShape) GetImageData() []byte { return m.data }
func (m *MemoryDrawingShape) GetMimeType() string  { return m.mimeType }

const maxImageFileSize = 50 << 20

// readImageFile reads a picture from disk, refusing files over
// maxImageFileSize.
func readImageFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image %s: %w: %w", path, ErrImageSource, err)
	}
	if info.Size() > maxImageFileSize {
		return nil, fmt.Errorf("image %s: %w: %d bytes (max %d)", path, ErrImageTooLarge, info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w: %w", path, ErrImageSource, err)
	}
	return data, nil
}
