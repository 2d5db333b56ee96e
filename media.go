package gopresentation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// ImageInfo is what the export needs to know about a picture.
type ImageInfo struct {
	MIME      string // content type written to the package manifest
	Extension string // file extension without the dot
	Width     int    // pixels, 0 when unknown (SVG)
	Height    int
}

// ImageSniffer identifies image bytes. The export never trusts a file
// extension or a caller supplied MIME type; the sniffed type decides the
// media file name and the manifest entry.
type ImageSniffer interface {
	Sniff(data []byte) (ImageInfo, error)
}

// supportedImages lists the accepted formats in detection order.
var supportedImages = []struct {
	mime string
	ext  string
}{
	{"image/png", "png"},
	{"image/jpeg", "jpeg"},
	{"image/gif", "gif"},
	{"image/bmp", "bmp"},
	{"image/tiff", "tiff"},
	{"image/webp", "webp"},
	{"image/svg+xml", "svg"},
}

// DefaultImageSniffer returns the magic-byte sniffer used when no other is
// configured. Raster images are decoded in full, so a file whose header
// is fine but whose pixel data is not is rejected.
func DefaultImageSniffer() ImageSniffer { return magicSniffer{} }

type magicSniffer struct{}

func (magicSniffer) Sniff(data []byte) (ImageInfo, error) {
	if len(data) == 0 {
		return ImageInfo{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	detected := mimetype.Detect(data)
	for _, f := range supportedImages {
		if !detected.Is(f.mime) {
			continue
		}
		info := ImageInfo{MIME: f.mime, Extension: f.ext}
		if f.ext == "svg" {
			return info, nil
		}
		// A valid header in front of junk is not an image: decode the pixels.
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return ImageInfo{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, f.mime, err)
		}
		bounds := img.Bounds()
		info.Width, info.Height = bounds.Dx(), bounds.Dy()
		return info, nil
	}
	return ImageInfo{}, fmt.Errorf("%w: detected %s", ErrUnsupportedImage, detected.String())
}

// fallbackPictureSize is used for pictures without a pixel size (SVG) and
// without an explicit extent.
const fallbackPictureSize = emuPerInch

// pictureExtent returns the frame size of a picture: its own extent when
// set, otherwise the sniffed pixel size at 96 DPI.
func pictureExtent(b *BaseShape, info ImageInfo) (cx, cy int64) {
	cx, cy = b.width, b.height
	if cx > 0 && cy > 0 {
		return cx, cy
	}
	if info.Width == 0 || info.Height == 0 {
		if cx == 0 {
			cx = fallbackPictureSize
		}
		if cy == 0 {
			cy = fallbackPictureSize
		}
		return cx, cy
	}
	switch {
	case cx == 0 && cy == 0:
		return pixelsToEMU(info.Width), pixelsToEMU(info.Height)
	case cx == 0:
		return cy * int64(info.Width) / int64(info.Height), cy
	default:
		return cx, cx * int64(info.Height) / int64(info.Width)
	}
}

// drawingBytes returns the bytes of a file backed picture.
func drawingBytes(d *DrawingShape) ([]byte, error) {
	if d.data != nil {
		return d.data, nil
	}
	if d.path == "" {
		return nil, fmt.Errorf("picture %q: %w", d.name, ErrImageSource)
	}
	return readImageFile(d.path)
}

// memoryDrawingBytes returns the bytes of an in-memory picture, running its
// render callback if it has one.
func memoryDrawingBytes(m *MemoryDrawingShape) ([]byte, error) {
	if m.render != nil {
		var buf bytes.Buffer
		if err := m.render(&buf); err != nil {
			return nil, fmt.Errorf("render picture %q: %w: %w", m.name, ErrImageSource, err)
		}
		if buf.Len() == 0 {
			return nil, fmt.Errorf("render picture %q: %w: callback wrote nothing", m.name, ErrImageSource)
		}
		return buf.Bytes(), nil
	}
	if len(m.data) == 0 {
		return nil, fmt.Errorf("picture %q: %w", m.name, ErrImageSource)
	}
	return m.data, nil
}
