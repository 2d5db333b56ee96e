package gopresentation

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"go.followtheprocess.codes/test"
	"golang.org/x/image/bmp"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	test.Ok(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	test.Ok(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

// jpegPrefix returns the first half of a JPEG: its headers without the scan.
func jpegPrefix(t *testing.T) []byte {
	t.Helper()
	data := encodeJPEG(t, 16, 16)
	return data[:len(data)/2]
}

func TestSniffer(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	tests := []struct {
		name string
		data []byte
		want ImageInfo
	}{
		{name: "png", data: testPNG(), want: ImageInfo{MIME: "image/png", Extension: "png", Width: 1, Height: 1}},
		{name: "gif", data: testGIF(), want: ImageInfo{MIME: "image/gif", Extension: "gif", Width: 1, Height: 1}},
		{name: "jpeg", data: encodeJPEG(t, 8, 4), want: ImageInfo{MIME: "image/jpeg", Extension: "jpeg", Width: 8, Height: 4}},
		{name: "bmp", data: encodeBMP(t, 3, 2), want: ImageInfo{MIME: "image/bmp", Extension: "bmp", Width: 3, Height: 2}},
		{name: "svg", data: svg, want: ImageInfo{MIME: "image/svg+xml", Extension: "svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultImageSniffer().Sniff(tt.data)
			test.Ok(t, err)
			test.Equal(t, got, tt.want)
		})
	}
}

func TestSnifferRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "text", data: []byte("hello, world")},
		{name: "pdf", data: []byte("%PDF-1.7\n1 0 obj\n")},
		{name: "truncated png", data: testPNG()[:12]},
		{name: "png header only", data: testPNG()[:33]},
		{name: "gif magic then junk", data: []byte("GIF89a but not really")},
		{name: "jpeg cut short", data: jpegPrefix(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultImageSniffer().Sniff(tt.data)
			test.True(t, errors.Is(err, ErrUnsupportedImage), test.Context("got %v", err))
		})
	}
}

func TestSniffedTypeNamesTheMediaFile(t *testing.T) {
	p := New()
	// The hint says PNG, the bytes are a JPEG.
	p.GetActiveSlide().CreateMemoryDrawingShape().SetImageData(encodeJPEG(t, 2, 2), "image/png")

	a := export(t, p, WriterPowerPoint2007)
	checkContentTypes(t, a)
	test.True(t, a.has("ppt/media/image1.jpeg"))
	test.True(t, !a.has("ppt/media/image1.png"))
}

func TestPictureExtent(t *testing.T) {
	info := ImageInfo{Width: 200, Height: 100}
	tests := []struct {
		name   string
		w, h   int64
		info   ImageInfo
		cx, cy int64
	}{
		{name: "explicit", w: 10, h: 20, info: info, cx: 10, cy: 20},
		{name: "pixels at 96 dpi", info: info, cx: 1905000, cy: 952500},
		{name: "width only", w: 1000, info: info, cx: 1000, cy: 500},
		{name: "height only", h: 1000, info: info, cx: 2000, cy: 1000},
		{name: "svg", info: ImageInfo{}, cx: emuPerInch, cy: emuPerInch},
		{name: "svg with width", w: 42, info: ImageInfo{}, cx: 42, cy: emuPerInch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BaseShape{width: tt.w, height: tt.h}
			cx, cy := pictureExtent(b, tt.info)
			test.Equal(t, cx, tt.cx)
			test.Equal(t, cy, tt.cy)
		})
	}
}

func TestMemoryDrawingRenderFunc(t *testing.T) {
	p := New()
	pic := p.GetActiveSlide().CreateMemoryDrawingShape()
	pic.SetRenderFunc(func(w io.Writer) error {
		_, err := w.Write(testPNG())
		return err
	}, "image/png")

	a := export(t, p, WriterODPresentation)
	test.True(t, bytes.Equal(a.files["Pictures/memory1.png"], testPNG()))

	failing := New()
	failing.GetActiveSlide().CreateMemoryDrawingShape().SetRenderFunc(func(io.Writer) error {
		return errors.New("no pixels")
	}, "")
	_, err := Prepare(failing)
	test.True(t, errors.Is(err, ErrImageSource))
}

func TestImageFileLimits(t *testing.T) {
	var d DrawingShape
	err := d.SetImageFromFile("does/not/exist.png")
	test.True(t, errors.Is(err, ErrImageSource))
	test.Equal(t, d.GetPath(), "")
}
