// Package deck loads slide decks described in TOML or YAML and turns them
// into presentations.
//
// A deck file names the document properties, the slide size and a list of
// slides. Each slide carries a title, body text, notes and any number of
// pictures, tables, charts and links:
//
//	title = "Quarterly review"
//	size = "screen16x9"
//
//	[[slides]]
//	title = "Revenue"
//	text = ["Up 12% on last quarter"]
//
//	[[slides.charts]]
//	type = "bar"
//	categories = ["Q1", "Q2", "Q3"]
//	series = [{ name = "2025", values = [10, 12, 14] }]
//
// Positions and sizes are in inches. Picture paths are relative to the deck
// file.
package deck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v4"
)

// ErrUnknownFormat is returned for deck files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown deck format")

const yamlIndent = 2

// Deck is the top level of a deck file.
type Deck struct {
	Title    string  `toml:"title"              yaml:"title"`
	Author   string  `toml:"author,omitempty"   yaml:"author,omitempty"`
	Subject  string  `toml:"subject,omitempty"  yaml:"subject,omitempty"`
	Company  string  `toml:"company,omitempty"  yaml:"company,omitempty"`
	Keywords string  `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Language string  `toml:"language,omitempty" yaml:"language,omitempty"`
	Size     string  `toml:"size,omitempty"     yaml:"size,omitempty"`
	View     *View   `toml:"view,omitempty"     yaml:"view,omitempty"`
	Slides   []Slide `toml:"slides"             yaml:"slides"`

	// Properties become custom document properties. Values are strings,
	// booleans, numbers or dates.
	Properties map[string]any `toml:"properties,omitempty" yaml:"properties,omitempty"`

	// dir is the directory relative picture paths resolve against.
	dir string
}

// View holds the settings an application opens the file with. Zoom is in
// percent; Open is the initial view: slide, notes, handout, outline, master
// or sorter.
type View struct {
	Zoom      float64 `toml:"zoom,omitempty"      yaml:"zoom,omitempty"`
	Open      string  `toml:"open,omitempty"      yaml:"open,omitempty"`
	Slideshow string  `toml:"slideshow,omitempty" yaml:"slideshow,omitempty"`
	Comments  bool    `toml:"comments,omitempty"  yaml:"comments,omitempty"`
	Final     bool    `toml:"final,omitempty"     yaml:"final,omitempty"`
}

// Slide is one slide of a deck.
type Slide struct {
	Name       string   `toml:"name,omitempty"       yaml:"name,omitempty"`
	Layout     string   `toml:"layout,omitempty"     yaml:"layout,omitempty"`
	Title      string   `toml:"title,omitempty"      yaml:"title,omitempty"`
	Text       []string `toml:"text,omitempty"       yaml:"text,omitempty"`
	Bullets    bool     `toml:"bullets,omitempty"    yaml:"bullets,omitempty"`
	Notes      string   `toml:"notes,omitempty"      yaml:"notes,omitempty"`
	Hidden     bool     `toml:"hidden,omitempty"     yaml:"hidden,omitempty"`
	Background string   `toml:"background,omitempty" yaml:"background,omitempty"`
	Images     []Image  `toml:"images,omitempty"     yaml:"images,omitempty"`
	Tables     []Table  `toml:"tables,omitempty"     yaml:"tables,omitempty"`
	Charts     []Chart  `toml:"charts,omitempty"     yaml:"charts,omitempty"`
	Links      []Link   `toml:"links,omitempty"      yaml:"links,omitempty"`
	Shapes     []Shape  `toml:"shapes,omitempty"     yaml:"shapes,omitempty"`

	// Copies appends that many duplicates of the slide right after it.
	Copies int `toml:"copies,omitempty" yaml:"copies,omitempty"`
}

// Box places an element on the slide. All fields are inches.
type Box struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
	W float64 `toml:"w" yaml:"w"`
	H float64 `toml:"h" yaml:"h"`
}

// LinkSpec is a hyperlink target: a URL or a 1-based slide number.
type LinkSpec struct {
	URL     string `toml:"url,omitempty"     yaml:"url,omitempty"`
	Slide   int    `toml:"slide,omitempty"   yaml:"slide,omitempty"`
	Tooltip string `toml:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// Image is a picture loaded from disk.
type Image struct {
	Path string    `toml:"path"           yaml:"path"`
	Name string    `toml:"name,omitempty" yaml:"name,omitempty"`
	Box  Box       `toml:"box"            yaml:"box"`
	Link *LinkSpec `toml:"link,omitempty" yaml:"link,omitempty"`
}

// Table is a grid of text cells. The first row is styled as a header when
// Header is set.
type Table struct {
	Rows   [][]string `toml:"rows"             yaml:"rows"`
	Header bool       `toml:"header,omitempty" yaml:"header,omitempty"`
	Box    Box        `toml:"box"              yaml:"box"`
}

// Chart is a chart with inline data.
type Chart struct {
	Type        string   `toml:"type"                  yaml:"type"`
	Title       string   `toml:"title,omitempty"       yaml:"title,omitempty"`
	Categories  []string `toml:"categories"            yaml:"categories"`
	Series      []Series `toml:"series"                yaml:"series"`
	Legend      string   `toml:"legend,omitempty"      yaml:"legend,omitempty"`
	Spreadsheet bool     `toml:"spreadsheet,omitempty" yaml:"spreadsheet,omitempty"`
	Blanks      string   `toml:"blanks,omitempty"      yaml:"blanks,omitempty"`
	Axes        *Axes    `toml:"axes,omitempty"        yaml:"axes,omitempty"`
	Box         Box      `toml:"box"                   yaml:"box"`
}

// Axes titles the axes and optionally fixes the value range.
type Axes struct {
	X    string   `toml:"x,omitempty"    yaml:"x,omitempty"`
	Y    string   `toml:"y,omitempty"    yaml:"y,omitempty"`
	Min  *float64 `toml:"min,omitempty"  yaml:"min,omitempty"`
	Max  *float64 `toml:"max,omitempty"  yaml:"max,omitempty"`
	Grid bool     `toml:"grid,omitempty" yaml:"grid,omitempty"`
}

// Series is one named row of chart values.
type Series struct {
	Name   string    `toml:"name"             yaml:"name"`
	Values []float64 `toml:"values"           yaml:"values"`
	Color  string    `toml:"color,omitempty"  yaml:"color,omitempty"`
	Labels bool      `toml:"labels,omitempty" yaml:"labels,omitempty"`
}

// Link is a line of text that links to a URL or to a slide.
type Link struct {
	Text    string `toml:"text"              yaml:"text"`
	URL     string `toml:"url,omitempty"     yaml:"url,omitempty"`
	Slide   int    `toml:"slide,omitempty"   yaml:"slide,omitempty"`
	Tooltip string `toml:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Box     *Box   `toml:"box,omitempty"     yaml:"box,omitempty"`
}

func (l Link) target() *LinkSpec {
	return &LinkSpec{URL: l.URL, Slide: l.Slide, Tooltip: l.Tooltip}
}

// Shape is a preset geometry with optional text.
type Shape struct {
	Kind string    `toml:"kind"           yaml:"kind"`
	Text string    `toml:"text,omitempty" yaml:"text,omitempty"`
	Fill string    `toml:"fill,omitempty" yaml:"fill,omitempty"`
	Box  Box       `toml:"box"            yaml:"box"`
	Link *LinkSpec `toml:"link,omitempty" yaml:"link,omitempty"`
}

// Load reads a deck file. The format is chosen by extension: .toml, or
// .yaml and .yml.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.dir = filepath.Dir(path)
	return d, nil
}

// Parse decodes a deck in the given format, "toml" or "yaml".
func Parse(data []byte, format string) (*Deck, error) {
	var d Deck
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &d, nil
}

// Encode writes the deck in the given format.
func (d *Deck) Encode(w io.Writer, format string) error {
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(d)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(yamlIndent)
		if err := encoder.Encode(d); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// SetDir sets the directory picture paths are resolved against.
func (d *Deck) SetDir(dir string) { d.dir = dir }

// FormatOf reports the deck format implied by a file name.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Sample is the starter deck written by "godeck init".
func Sample() *Deck {
	return &Deck{
		Title:    "Quarterly review",
		Author:   "Finance",
		Language: "en-US",
		Size:     "screen16x9",
		View:     &View{Zoom: 100, Open: "slide"},
		Properties: map[string]any{
			"Department": "Finance",
		},
		Slides: []Slide{
			{
				Layout: "Title Slide",
				Title:  "Quarterly review",
				Text:   []string{"Results and outlook"},
				Notes:  "Welcome everyone.",
			},
			{
				Layout: "Title Only",
				Title:  "Revenue",
				Charts: []Chart{{
					Type:       "bar",
					Title:      "Revenue by quarter",
					Categories: []string{"Q1", "Q2", "Q3", "Q4"},
					Series: []Series{
						{Name: "2024", Values: []float64{10, 11, 12, 13}},
						{Name: "2025", Values: []float64{12, 13, 15, 17}},
					},
					Legend:      "bottom",
					Spreadsheet: true,
					Box:         Box{X: 1, Y: 1.5, W: 8, H: 5},
				}},
				Links: []Link{{Text: "Back to start", Slide: 1}},
			},
		},
	}
}
