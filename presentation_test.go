package gopresentation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSlideOperations(t *testing.T) {
	p := New()
	s1 := p.GetActiveSlide()
	s1.SetName("First")
	s1.CreateRichTextShape().CreateTextRun("Slide 1")

	s2 := p.CreateSlide()
	s2.SetName("Second")
	s2.CreateRichTextShape().CreateTextRun("Slide 2")

	s3 := p.CreateSlide()
	s3.SetName("Third")
	s3.CreateRichTextShape().CreateTextRun("Slide 3")

	if err := p.MoveSlide(2, 0); err != nil {
		t.Fatalf("MoveSlide failed: %v", err)
	}
	first, _ := p.GetSlide(0)
	if first.GetName() != "Third" {
		t.Errorf("after move, first slide should be 'Third', got '%s'", first.GetName())
	}

	if err := p.RemoveSlideByIndex(1); err != nil {
		t.Fatalf("RemoveSlideByIndex failed: %v", err)
	}
	if p.GetSlideCount() != 2 {
		t.Errorf("expected 2 slides after remove, got %d", p.GetSlideCount())
	}

	copied, err := p.CopySlide(0)
	if err != nil {
		t.Fatalf("CopySlide failed: %v", err)
	}
	if p.GetSlideCount() != 3 {
		t.Errorf("expected 3 slides after copy, got %d", p.GetSlideCount())
	}
	if copied.GetName() != "Third" {
		t.Errorf("copy should keep the name, got '%s'", copied.GetName())
	}

	a := export(t, p, WriterPowerPoint2007)
	for _, name := range []string{"ppt/slides/slide1.xml", "ppt/slides/slide2.xml", "ppt/slides/slide3.xml"} {
		if !a.has(name) {
			t.Errorf("missing %s", name)
		}
	}
	if !strings.Contains(a.text("ppt/slides/slide1.xml"), "Slide 3") {
		t.Error("moved slide should be written first")
	}
}

func TestCopySlideSharesShapes(t *testing.T) {
	p := New()
	src := p.GetActiveSlide()
	src.SetLayoutName(LayoutTitleOnly)
	src.SetHidden(true)
	src.SetBackground(NewFill().SetSolid(ColorBlue))
	text := src.CreateRichTextShape()
	text.CreateTextRun("shared")
	src.SetNotes("notes")

	dst, err := p.CopySlide(0)
	if err != nil {
		t.Fatalf("CopySlide failed: %v", err)
	}
	if dst.GetLayoutName() != LayoutTitleOnly || !dst.IsHidden() {
		t.Error("copy should keep layout and visibility")
	}
	if dst.GetShapes()[0] != Shape(text) {
		t.Error("copy should share shape values")
	}
	if dst.GetNotes() != "notes" {
		t.Errorf("copy notes = %q", dst.GetNotes())
	}

	// The shape lists are independent.
	dst.CreateAutoShape()
	if src.GetShapeCount() != 1 || dst.GetShapeCount() != 2 {
		t.Errorf("shape counts = %d, %d", src.GetShapeCount(), dst.GetShapeCount())
	}
	// So are the backgrounds.
	dst.GetBackground().SetSolid(ColorRed)
	if src.GetBackground().Color.ARGB != ColorBlue.ARGB {
		t.Error("changing the copy's background changed the source")
	}
}

func TestSlideErrors(t *testing.T) {
	p := New()

	if _, err := p.GetSlide(99); !errors.Is(err, errOutOfRange) {
		t.Errorf("GetSlide(99) = %v", err)
	}
	if err := p.SetActiveSlideIndex(99); err == nil {
		t.Error("expected error for out-of-range active slide")
	}
	if err := p.RemoveSlideByIndex(0); !errors.Is(err, ErrNoSlides) {
		t.Errorf("removing the last slide = %v", err)
	}
	if err := p.MoveSlide(0, 99); err == nil {
		t.Error("expected error for out-of-range move")
	}
	if _, err := p.CopySlide(99); err == nil {
		t.Error("expected error for out-of-range copy")
	}
	if err := p.GetActiveSlide().RemoveShape(99); err == nil {
		t.Error("expected error for out-of-range shape removal")
	}
	if NewTableShape(2, 2).GetCell(99, 99) != nil {
		t.Error("expected nil for out-of-range cell")
	}
}

func TestExtractText(t *testing.T) {
	p := New()
	s := p.GetActiveSlide()
	rt := s.CreateRichTextShape()
	rt.CreateTextRun("Hello ")
	rt.CreateTextRun("World")
	rt.CreateParagraph().CreateTextRun("Second")

	tbl := s.CreateTableShape(1, 2)
	tbl.GetCell(0, 0).SetText("a")
	tbl.GetCell(0, 1).SetText("b")

	g := s.CreateGroup()
	g.AddShape(NewAutoShape().SetText("grouped"))
	s.SetNotes("not included")

	p.CreateSlide().CreateRichTextShape().CreateTextRun("Next")

	want := "Hello World\nSecond\na\tb\ngrouped\n\nNext"
	if got := p.ExtractText(); got != want {
		t.Errorf("ExtractText = %q, want %q", got, want)
	}
	if got := s.GetNotes(); got != "not included" {
		t.Errorf("GetNotes = %q", got)
	}
}

func TestSetNotes(t *testing.T) {
	s := New().GetActiveSlide()
	s.SetNotes("line one\nline two")
	if got := s.GetNotes(); got != "line one\nline two" {
		t.Errorf("GetNotes = %q", got)
	}
	if n := len(s.GetNote().GetShapes()); n != 1 {
		t.Errorf("notes should be one text box, got %d shapes", n)
	}
	s.SetNotes("")
	if s.GetNote() != nil {
		t.Error("empty notes should remove the notes page")
	}
}

func TestMeasurements(t *testing.T) {
	if Inch(1) != 914400 {
		t.Errorf("1 inch = %d EMU, expected 914400", Inch(1))
	}
	if Point(1) != 12700 {
		t.Errorf("1 point = %d EMU, expected 12700", Point(1))
	}
	if Centimeter(1) != 360000 {
		t.Errorf("1 cm = %d EMU, expected 360000", Centimeter(1))
	}
	if Millimeter(1) != 36000 {
		t.Errorf("1 mm = %d EMU, expected 36000", Millimeter(1))
	}
	if EMUToInch(Inch(2.5)) != 2.5 {
		t.Errorf("EMUToInch round-trip failed")
	}
	if EMUToPoint(Point(72)) != 72 {
		t.Errorf("EMUToPoint round-trip failed")
	}
	if Pixel(96) != Inch(1) {
		t.Errorf("96 px = %d EMU, expected one inch", Pixel(96))
	}
	if Inch(1e300) != maxEMU || Inch(-1e300) != -maxEMU {
		t.Error("huge lengths should saturate")
	}
	if got := odfLength(Centimeter(2.54)); got != "2.540cm" {
		t.Errorf("odfLength = %s", got)
	}
	if got := emuToHundredthMM(Millimeter(10)); got != 1000 {
		t.Errorf("emuToHundredthMM = %d", got)
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "FF0000", want: "FFFF0000"},
		{in: "#00ff00", want: "FF00FF00"},
		{in: "80112233", want: "80112233"},
		{in: "not a color", want: "FF000000"},
	}
	for _, tt := range tests {
		if got := NewColor(tt.in).ARGB; got != tt.want {
			t.Errorf("NewColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	c := NewColor("80112233")
	if c.GetAlpha() != 0x80 || c.GetRed() != 0x11 || c.GetGreen() != 0x22 || c.GetBlue() != 0x33 {
		t.Errorf("components of %s are wrong", c.ARGB)
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Error("ParseColor accepted five digits")
	}
	if got := (Color{ARGB: "garbage!"}).GetRed(); got != 0 {
		t.Errorf("red of a malformed color = %d", got)
	}
	if isValidARGB("ff000000") {
		t.Error("lower-case ARGB passed validation")
	}
}

func TestDocumentLayout(t *testing.T) {
	l := NewDocumentLayout()
	l.SetLayout(LayoutScreen16x9)
	if l.CX != 12192000 || l.CY != 6858000 {
		t.Errorf("16:9 = %dx%d", l.CX, l.CY)
	}
	l.SetCustomLayout(-1, Inch(5))
	if l.CX != 9144000 || l.CY != Inch(5) || l.Name != LayoutCustom {
		t.Errorf("custom layout = %+v", l)
	}

	p := New()
	p.GetLayout().SetLayout(LayoutA4)
	a := export(t, p, WriterPowerPoint2007)
	if !strings.Contains(a.text("ppt/presentation.xml"), `type="A4"`) {
		t.Error("slide size type not written")
	}
}

func TestVersion(t *testing.T) {
	if !strings.HasPrefix(Version, "1.") {
		t.Errorf("Version = %s", Version)
	}
	a := export(t, New(), WriterPowerPoint2007)
	want := fmt.Sprintf("<AppVersion>%d.%04d</AppVersion>", VersionMajor, VersionMinor)
	if !strings.Contains(a.text("docProps/app.xml"), want) {
		t.Errorf("app.xml should carry %s", want)
	}
}
