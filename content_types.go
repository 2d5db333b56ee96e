package gopresentation

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type xmlContentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// contentTypes collects the [Content_Types].xml entries while the part list
// is planned. Each extension and each part name is declared once; a second
// declaration with a different type is an error reported when the part is
// rendered.
type contentTypes struct {
	defaults  []xmlDefault
	overrides []xmlOverride
	byExt     map[string]string
	byPart    map[string]string
	err       error
}

func newContentTypes() *contentTypes {
	return &contentTypes{
		byExt:  make(map[string]string),
		byPart: make(map[string]string),
	}
}

func (c *contentTypes) addDefault(ext, contentType string) {
	ext = strings.ToLower(ext)
	if prev, ok := c.byExt[ext]; ok {
		if prev != contentType && c.err == nil {
			c.err = fmt.Errorf("extension %q declared as %s and %s", ext, prev, contentType)
		}
		return
	}
	c.byExt[ext] = contentType
	c.defaults = append(c.defaults, xmlDefault{Extension: ext, ContentType: contentType})
}

func (c *contentTypes) addOverride(part, contentType string) {
	if !strings.HasPrefix(part, "/") {
		part = "/" + part
	}
	if prev, ok := c.byPart[part]; ok {
		if c.err == nil {
			c.err = fmt.Errorf("part %s declared twice (%s, %s)", part, prev, contentType)
		}
		return
	}
	c.byPart[part] = contentType
	c.overrides = append(c.overrides, xmlOverride{PartName: part, ContentType: contentType})
}

// lookup returns the content type a consumer would resolve for part: its
// override, else the default of its extension.
func (c *contentTypes) lookup(part string) (string, bool) {
	if !strings.HasPrefix(part, "/") {
		part = "/" + part
	}
	if ct, ok := c.byPart[part]; ok {
		return ct, true
	}
	i := strings.LastIndex(part, ".")
	if i < 0 {
		return "", false
	}
	ct, ok := c.byExt[strings.ToLower(part[i+1:])]
	return ct, ok
}

func (c *contentTypes) render() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return marshalXML(xmlContentTypes{
		Xmlns:     nsContentTypes,
		Defaults:  c.defaults,
		Overrides: c.overrides,
	})
}

// require records an error if part would have no content type.
func (c *contentTypes) require(part string) {
	if _, ok := c.lookup(part); !ok && c.err == nil {
		c.err = fmt.Errorf("part %s has no content type", part)
	}
}
