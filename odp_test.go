package gopresentation

import (
	"archive/zip"
	"encoding/xml"
	"strings"
	"testing"

	"go.followtheprocess.codes/test"
)

type testManifest struct {
	Entries []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"file-entry"`
}

// checkManifest verifies the ODF package rules: mimetype first and stored,
// the manifest last, and every other entry listed in the manifest exactly
// once with nothing listed that is not in the archive.
func checkManifest(t *testing.T, a *archive) map[string]string {
	t.Helper()
	first := a.zr.File[0]
	if first.Name != "mimetype" || first.Method != zip.Store {
		t.Fatalf("first entry is %s (method %d), want stored mimetype", first.Name, first.Method)
	}
	if a.text("mimetype") != mimeODP {
		t.Errorf("mimetype is %q", a.text("mimetype"))
	}
	if last := a.names[len(a.names)-1]; last != "META-INF/manifest.xml" {
		t.Errorf("last entry is %s", last)
	}

	var m testManifest
	if err := xml.Unmarshal(a.files["META-INF/manifest.xml"], &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	listed := make(map[string]string)
	for _, e := range m.Entries {
		if _, dup := listed[e.FullPath]; dup {
			t.Errorf("manifest lists %s twice", e.FullPath)
		}
		listed[e.FullPath] = e.MediaType
		if e.FullPath == "/" || strings.HasSuffix(e.FullPath, "/") {
			continue
		}
		if !a.has(e.FullPath) {
			t.Errorf("manifest lists missing part %s", e.FullPath)
		}
	}
	for _, name := range a.names {
		if name == "mimetype" || name == "META-INF/manifest.xml" {
			continue
		}
		if _, ok := listed[name]; !ok {
			t.Errorf("part %s is not in the manifest", name)
		}
	}
	return listed
}

func TestODPPackageLayout(t *testing.T) {
	p := New()
	p.GetDocumentProperties().Language = "de-DE"
	p.GetDocumentProperties().Title = "Bericht"
	p.GetActiveSlide().CreateRichTextShape().CreateTextRun("Hallo")

	a := export(t, p, WriterODPresentation)
	checkManifest(t, a)
	checkWellFormed(t, a)

	test.Equal(t, strings.Join(a.names, ","), "mimetype,content.xml,styles.xml,meta.xml,settings.xml,META-INF/manifest.xml")
	test.True(t, strings.Contains(a.text("content.xml"), "Hallo"))
	meta := a.text("meta.xml")
	test.True(t, strings.Contains(meta, "<dc:language>de-DE</dc:language>"))
	test.True(t, strings.Contains(meta, "<dc:title>Bericht</dc:title>"))
	test.True(t, strings.Contains(meta, "<meta:generator>GoDeck/"))
}

func TestODPPicturesFromOnePathShareAFile(t *testing.T) {
	img := writeTempFile(t, t.TempDir(), "logo.png", testPNG())

	p := New()
	s := p.GetActiveSlide()
	for range 2 {
		pic := s.CreateDrawingShape()
		test.Ok(t, pic.SetImageFromFile(img))
	}
	s.CreateMemoryDrawingShape().SetImageData(testGIF(), "image/gif")

	a := export(t, p, WriterODPresentation)
	listed := checkManifest(t, a)

	var pictures []string
	for _, name := range a.names {
		if strings.HasPrefix(name, "Pictures/") {
			pictures = append(pictures, name)
		}
	}
	test.Equal(t, len(pictures), 2)
	test.True(t, strings.HasSuffix(pictures[0], ".png"))
	test.Equal(t, len(strings.TrimSuffix(strings.TrimPrefix(pictures[0], "Pictures/"), ".png")), 64, test.Context("sha256 hex name"))
	test.Equal(t, pictures[1], "Pictures/memory1.gif")
	test.Equal(t, listed[pictures[0]], "image/png")
	test.Equal(t, listed[pictures[1]], "image/gif")

	content := a.text("content.xml")
	test.Equal(t, strings.Count(content, `xlink:href="`+pictures[0]+`"`), 2)
}

func TestODPChartObjects(t *testing.T) {
	p := New()
	p.GetActiveSlide().AddShape(barChart(false))
	p.CreateSlide().AddShape(barChart(true))

	a := export(t, p, WriterODPresentation)
	listed := checkManifest(t, a)
	checkWellFormed(t, a)

	for _, dir := range []string{"Object 1/", "Object 2/"} {
		test.Equal(t, listed[dir], mimeChart)
		test.True(t, a.has(dir+"content.xml"))
		test.True(t, a.has(dir+"styles.xml"))
		test.True(t, strings.Contains(a.text(dir+"content.xml"), `table:name="local-table"`))
	}
	test.True(t, strings.Contains(a.text("content.xml"), `<draw:object xlink:href="./Object 1"`))

	obj := a.text("Object 1/content.xml")
	for _, want := range []string{
		`table:cell-range-address="local-table.$A$1:.$C$4" chart:data-source-has-labels="both"`,
		`chart:values-cell-range-address="local-table.$B$2:.$B$4"`,
		`chart:values-cell-range-address="local-table.$C$2:.$C$4"`,
		`chart:label-cell-address="local-table.$C$1"`,
		`<chart:categories table:cell-range-address="local-table.$A$2:.$A$4"/>`,
	} {
		test.True(t, strings.Contains(obj, want), test.Context("ODF chart lacks %s", want))
	}
	test.True(t, !strings.Contains(obj, ":.local-table."), test.Context("range end repeats the table name"))
	for _, name := range a.names {
		test.True(t, !strings.HasSuffix(name, ".xlsx"), test.Context("odp embeds no workbook: %s", name))
	}
}

func TestODPLinksAndNotes(t *testing.T) {
	p := New()
	first := p.GetActiveSlide()
	second := p.CreateSlide()
	second.SetName("Summary")
	p.CreateSlide()

	text := first.CreateRichTextShape()
	text.CreateTextRun("to summary").SetHyperlink(NewInternalHyperlink(2))
	text.CreateTextRun("to third").SetHyperlink(NewInternalHyperlink(3))
	first.CreateAutoShape().SetHyperlink(NewHyperlink("https://example.com/?q=1&r=2"))
	first.SetNotes("speaker notes")

	a := export(t, p, WriterODPresentation)
	checkManifest(t, a)
	checkWellFormed(t, a)

	content := a.text("content.xml")
	test.True(t, strings.Contains(content, `xlink:href="#Summary"`))
	test.True(t, strings.Contains(content, `xlink:href="#page3"`))
	test.True(t, strings.Contains(content, `draw:name="Summary"`))
	test.True(t, strings.Contains(content, `xlink:href="https://example.com/?q=1&amp;r=2"`))
	test.True(t, strings.Contains(content, "<presentation:notes>"))
	test.True(t, strings.Contains(content, "speaker notes"))
}

func TestODPGroupsAndHiddenSlides(t *testing.T) {
	p := New()
	s := p.GetActiveSlide()
	s.SetHidden(true)
	g := s.CreateGroup()
	g.SetName("pair")
	g.AddShape(NewAutoShape().SetText("left"))
	g.AddShape(NewAutoShape().SetText("right"))

	a := export(t, p, WriterODPresentation)
	checkWellFormed(t, a)
	content := a.text("content.xml")
	test.True(t, strings.Contains(content, `<draw:g draw:name="pair"`))
	test.True(t, strings.Contains(content, `presentation:visibility="hidden"`))
	test.Equal(t, strings.Count(content, "<draw:custom-shape"), 2)
}
