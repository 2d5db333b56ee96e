package gopresentation

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const defaultLanguage = "en-US"

// documentLanguage parses the document language. Empty means en-US.
func documentLanguage(props *DocumentProperties) (language.Tag, error) {
	name := defaultLanguage
	if props != nil && props.Language != "" {
		name = props.Language
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, fmt.Errorf("%w: document language %q: %v", ErrInvalidPresentation, name, err)
	}
	return tag, nil
}

// languageParts splits a tag into the ISO 639 language and ISO 3166 country
// used by ODF's fo:language and fo:country. Country is empty when the tag
// names no region.
func languageParts(tag language.Tag) (lang, country string) {
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf == language.Exact {
		country = region.String()
	}
	return base.String(), country
}

// documentIdentifier returns the dc:identifier of the package: the caller's
// value if set, otherwise a name based UUID over title, creator and creation
// time so that identical documents get identical identifiers.
func documentIdentifier(props *DocumentProperties) string {
	if props == nil {
		return ""
	}
	if props.Identifier != "" {
		return props.Identifier
	}
	name := props.Title + "\x00" + props.Creator + "\x00" + props.Created.UTC().Format(time.RFC3339)
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// w3cdtf formats a property timestamp as W3C date time in UTC.
func w3cdtf(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// markAsFinal is the custom property PowerPoint reads for "Mark as Final".
const markAsFinal = "_MarkAsFinal"

// packageCustomProperties returns the entries of docProps/custom.xml: the
// user's properties by name, then the final flag unless the user set it.
func packageCustomProperties(p *Presentation) []CustomProperty {
	var out []CustomProperty
	if p.properties != nil {
		out = p.properties.CustomProperties()
	}
	if pp := p.settings; pp != nil && pp.Final &&
		!slices.ContainsFunc(out, func(cp CustomProperty) bool { return cp.Name == markAsFinal }) {
		out = append(out, CustomProperty{Name: markAsFinal, Type: PropertyTypeBoolean, Value: true})
	}
	return out
}
