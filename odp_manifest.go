package gopresentation

import (
	"encoding/xml"
	"fmt"
)

const (
	mimeODP   = "application/vnd.oasis.opendocument.presentation"
	mimeChart = "application/vnd.oasis.opendocument.chart"
	mimeXML   = "text/xml"
)

type xmlManifest struct {
	XMLName xml.Name           `xml:"manifest:manifest"`
	Xmlns   string             `xml:"xmlns:manifest,attr"`
	Version string             `xml:"manifest:version,attr"`
	Entries []xmlManifestEntry `xml:"manifest:file-entry"`
}

type xmlManifestEntry struct {
	FullPath  string `xml:"manifest:full-path,attr"`
	MediaType string `xml:"manifest:media-type,attr"`
	Version   string `xml:"manifest:version,attr,omitempty"`
}

// manifest collects META-INF/manifest.xml while the ODP part list is
// planned. Every path is listed once. Directories of embedded objects end in
// a slash and carry the object's media type.
type manifest struct {
	entries []xmlManifestEntry
	byPath  map[string]string
	err     error
}

func newManifest() *manifest {
	m := &manifest{byPath: make(map[string]string)}
	m.entries = append(m.entries, xmlManifestEntry{FullPath: "/", MediaType: mimeODP, Version: odfVersion})
	m.byPath["/"] = mimeODP
	return m
}

// add lists path once. Listing it again with the same type is a no-op, with
// another type an error reported when the manifest is rendered.
func (m *manifest) add(path, mediaType string) {
	if prev, ok := m.byPath[path]; ok {
		if prev != mediaType && m.err == nil {
			m.err = fmt.Errorf("manifest entry %s listed as %s and %s", path, prev, mediaType)
		}
		return
	}
	m.byPath[path] = mediaType
	m.entries = append(m.entries, xmlManifestEntry{FullPath: path, MediaType: mediaType})
}

// require records an error if path is missing from the manifest. The
// mimetype entry and the manifest itself are never listed.
func (m *manifest) require(path string) {
	if path == "mimetype" || path == "META-INF/manifest.xml" {
		return
	}
	if _, ok := m.byPath[path]; !ok && m.err == nil {
		m.err = fmt.Errorf("part %s missing from manifest", path)
	}
}

func (m *manifest) render() ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return marshalXML(xmlManifest{
		Xmlns:   nsManifest,
		Version: odfVersion,
		Entries: m.entries,
	})
}
