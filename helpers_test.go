package gopresentation

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// helper: create a minimal 1x1 PNG
func testPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
		0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
		0x54, 0x78, 0xDA, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
		0x00, 0x03, 0x01, 0x01, 0x00, 0xF7, 0x03, 0x41,
		0x43, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
		0x44, 0xAE, 0x42, 0x60, 0x82,
	}
}

// testGIF is a 1x1 GIF.
func testGIF() []byte {
	return []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
}

// archive is an exported package read back into memory.
type archive struct {
	names []string // archive order
	files map[string][]byte
	zr    *zip.Reader
}

func (a *archive) has(name string) bool {
	_, ok := a.files[name]
	return ok
}

func (a *archive) text(name string) string { return string(a.files[name]) }

// export writes p in format and reads the archive back.
func export(t *testing.T, p *Presentation, format WriterType, opts ...Option) *archive {
	t.Helper()
	data := exportBytes(t, p, format, opts...)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	a := &archive{files: make(map[string][]byte), zr: zr}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		if _, dup := a.files[f.Name]; dup {
			t.Fatalf("duplicate entry %s", f.Name)
		}
		a.names = append(a.names, f.Name)
		a.files[f.Name] = b
	}
	return a
}

func exportBytes(t *testing.T, p *Presentation, format WriterType, opts ...Option) []byte {
	t.Helper()
	w, err := NewWriter(p, format, opts...)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.Bytes()
}

type testRels struct {
	Relationships []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func (a *archive) rels(t *testing.T, name string) testRels {
	t.Helper()
	var r testRels
	if err := xml.Unmarshal(a.files[name], &r); err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return r
}

// sourceOf returns the part a .rels file belongs to: the source of
// "ppt/slides/_rels/slide1.xml.rels" is "ppt/slides/slide1.xml".
// The package relationships "_rels/.rels" have no source part.
func sourceOf(rels string) string {
	if rels == "_rels/.rels" {
		return ""
	}
	dir := path.Dir(path.Dir(rels))
	base := strings.TrimSuffix(path.Base(rels), ".rels")
	if dir == "." {
		return base
	}
	return dir + "/" + base
}

var relRefPattern = regexp.MustCompile(`r:(?:id|embed|link)="([^"]*)"`)

// referencedTypes are the relationship types a source part must point at by
// id. Layout, master and theme links are implied by the relationship alone.
var referencedTypes = map[string]bool{
	relTypeImage:     true,
	relTypeHyperlink: true,
	relTypeChart:     true,
	relTypePackage:   true,
}

// checkReferentialIntegrity verifies every .rels part in both directions:
// each internal target exists, each r:id used by the source part is
// declared, and each picture, chart, hyperlink and package relationship is
// used by the source part.
func checkReferentialIntegrity(t *testing.T, a *archive) {
	t.Helper()
	for _, name := range a.names {
		if !strings.HasSuffix(name, ".rels") {
			continue
		}
		rels := a.rels(t, name)
		src := sourceOf(name)
		if src != "" && !a.has(src) {
			t.Errorf("%s: source part %s missing", name, src)
			continue
		}
		base := path.Dir(src)
		declared := make(map[string]bool)
		for _, r := range rels.Relationships {
			if declared[r.ID] {
				t.Errorf("%s: duplicate id %s", name, r.ID)
			}
			declared[r.ID] = true
			if r.TargetMode != "External" {
				target := path.Join(base, r.Target)
				if src == "" {
					target = r.Target
				}
				if !a.has(target) {
					t.Errorf("%s %s: target %s not in archive", name, r.ID, target)
				}
			}
		}
		if src == "" {
			continue
		}

		used := make(map[string]bool)
		for _, m := range relRefPattern.FindAllStringSubmatch(a.text(src), -1) {
			used[m[1]] = true
			if !declared[m[1]] {
				t.Errorf("%s uses %s, not declared in %s", src, m[1], name)
			}
		}
		inSlide := strings.HasPrefix(src, "ppt/slides/")
		for _, r := range rels.Relationships {
			mustUse := referencedTypes[r.Type] || (inSlide && r.Type == relTypeSlide)
			if mustUse && !used[r.ID] {
				t.Errorf("%s: %s (%s) is never used by %s", name, r.ID, path.Base(r.Type), src)
			}
		}
	}
}

type testContentTypes struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// checkContentTypes verifies that every part resolves to a content type,
// that no extension or override is declared twice, and that no override
// names a missing part.
func checkContentTypes(t *testing.T, a *archive) {
	t.Helper()
	if a.names[0] != "[Content_Types].xml" {
		t.Fatalf("first entry is %s", a.names[0])
	}
	var ct testContentTypes
	if err := xml.Unmarshal(a.files["[Content_Types].xml"], &ct); err != nil {
		t.Fatalf("parse content types: %v", err)
	}
	defaults := make(map[string]string)
	for _, d := range ct.Defaults {
		if _, dup := defaults[d.Extension]; dup {
			t.Errorf("default %s declared twice", d.Extension)
		}
		defaults[d.Extension] = d.ContentType
	}
	overrides := make(map[string]string)
	for _, o := range ct.Overrides {
		if _, dup := overrides[o.PartName]; dup {
			t.Errorf("override %s declared twice", o.PartName)
		}
		overrides[o.PartName] = o.ContentType
		if !a.has(strings.TrimPrefix(o.PartName, "/")) {
			t.Errorf("override %s names a missing part", o.PartName)
		}
	}
	for _, name := range a.names[1:] {
		if _, ok := overrides["/"+name]; ok {
			continue
		}
		ext := strings.TrimPrefix(path.Ext(name), ".")
		if _, ok := defaults[strings.ToLower(ext)]; !ok {
			t.Errorf("part %s has no content type", name)
		}
	}
}

// checkWellFormed parses every XML part.
func checkWellFormed(t *testing.T, a *archive) {
	t.Helper()
	for _, name := range a.names {
		if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".rels") {
			continue
		}
		dec := xml.NewDecoder(bytes.NewReader(a.files[name]))
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("%s is not well-formed: %v", name, err)
				break
			}
		}
	}
}

// writeTempFile writes data to dir/name and returns the path.
func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := path.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
