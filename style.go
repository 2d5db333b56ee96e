package gopresentation

// normalizeDegrees maps any angle into [0, 360).
func normalizeDegrees(d int) int { return ((d % 360) + 360) % 360 }

// Font is the character formatting of a text run. Size is in points.
type Font struct {
	Name string
	// NameEA is the East Asian typeface, written as <a:ea> when set.
	NameEA        string
	Size          int
	Bold          bool
	Italic        bool
	Strikethrough bool
	Superscript   bool
	Subscript     bool
	Underline     UnderlineType
	Color         Color
}

// UnderlineType is the DrawingML underline style.
type UnderlineType string

const (
	UnderlineNone   UnderlineType = "none"
	UnderlineSingle UnderlineType = "sng"
	UnderlineDouble UnderlineType = "dbl"
	UnderlineHeavy  UnderlineType = "heavy"
	UnderlineDash   UnderlineType = "dash"
	UnderlineWavy   UnderlineType = "wavy"
)

// NewFont returns 10 pt black Calibri.
func NewFont() *Font {
	return &Font{Name: "Calibri", Size: 10, Underline: UnderlineNone, Color: ColorBlack}
}

func (f *Font) SetName(name string) *Font          { f.Name = name; return f }
func (f *Font) SetBold(v bool) *Font               { f.Bold = v; return f }
func (f *Font) SetItalic(v bool) *Font             { f.Italic = v; return f }
func (f *Font) SetStrikethrough(v bool) *Font      { f.Strikethrough = v; return f }
func (f *Font) SetUnderline(u UnderlineType) *Font { f.Underline = u; return f }
func (f *Font) SetColor(c Color) *Font             { f.Color = c; return f }
func (f *Font) SetSize(pt int) *Font               { f.Size = min(max(pt, 1), 4000); return f }
func (f *Font) SetEastAsianName(name string) *Font { f.NameEA = name; return f }

// SetSuperscript and SetSubscript are exclusive; setting one clears the other.
func (f *Font) SetSuperscript(v bool) *Font { f.Superscript, f.Subscript = v, f.Subscript && !v; return f }
func (f *Font) SetSubscript(v bool) *Font   { f.Subscript, f.Superscript = v, f.Superscript && !v; return f }

// Alignment is the paragraph layout: horizontal alignment, outline level
// and the left margin and first-line indent in EMU.
type Alignment struct {
	Horizontal HorizontalAlignment
	Level      int
	MarginLeft int64
	Indent     int64
}

// HorizontalAlignment is the DrawingML algn value.
type HorizontalAlignment string

const (
	HorizontalLeft        HorizontalAlignment = "l"
	HorizontalCenter      HorizontalAlignment = "ctr"
	HorizontalRight       HorizontalAlignment = "r"
	HorizontalJustify     HorizontalAlignment = "just"
	HorizontalDistributed HorizontalAlignment = "dist"
)

func NewAlignment() *Alignment { return &Alignment{Horizontal: HorizontalLeft} }

func (a *Alignment) SetHorizontal(h HorizontalAlignment) *Alignment { a.Horizontal = h; return a }

// SetLevel sets the outline level, clamped to the 0-8 DrawingML range.
func (a *Alignment) SetLevel(l int) *Alignment { a.Level = min(max(l, 0), 8); return a }

// Fill paints the interior of a shape, a cell or a slide background.
// The zero value paints nothing.
type Fill struct {
	Type  FillType
	Color Color
	// EndColor and Rotation (degrees) apply to gradients only.
	EndColor Color
	Rotation int
}

// FillType selects how a Fill paints.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
	FillGradientLinear
	FillGradientPath
)

func NewFill() *Fill { return &Fill{} }

func (f *Fill) SetSolid(c Color) *Fill {
	f.Type, f.Color = FillSolid, c
	return f
}

// SetGradientLinear paints from start to end along rotation degrees.
func (f *Fill) SetGradientLinear(start, end Color, rotation int) *Fill {
	f.Type, f.Color, f.EndColor = FillGradientLinear, start, end
	f.Rotation = normalizeDegrees(rotation)
	return f
}

// Border is the outline of a shape or a table cell. Width is in EMU.
type Border struct {
	Style BorderStyle
	Width int
	Color Color
}

// BorderStyle is the dash pattern of a Border; BorderNone hides it.
type BorderStyle string

const (
	BorderNone  BorderStyle = "none"
	BorderSolid BorderStyle = "solid"
	BorderDash  BorderStyle = "dash"
	BorderDot   BorderStyle = "dot"
)

func NewBorder() *Border { return &Border{Style: BorderNone} }

// Shadow is an outer shadow. Direction is in degrees, Distance and
// BlurRadius in points and Alpha in percent.
type Shadow struct {
	Visible    bool
	Direction  int
	Distance   int
	BlurRadius int
	Color      Color
	Alpha      int
}

// NewShadow returns a hidden half-transparent black shadow.
func NewShadow() *Shadow { return &Shadow{Color: Color{ARGB: "80000000"}, Alpha: 50} }

func (s *Shadow) SetVisible(v bool) *Shadow  { s.Visible = v; return s }
func (s *Shadow) SetDirection(d int) *Shadow { s.Direction = normalizeDegrees(d); return s }
func (s *Shadow) SetDistance(d int) *Shadow  { s.Distance = max(d, 0); return s }

// Hyperlink is the click action of a shape or a text run. It targets either
// an external URL or another slide of the same presentation (1-based).
// The relationship id it ends up with is assigned by Prepare and kept in the
// export bindings, never on the hyperlink itself.
type Hyperlink struct {
	URL         string
	Tooltip     string
	IsInternal  bool
	SlideNumber int
}

func NewHyperlink(url string) *Hyperlink { return &Hyperlink{URL: url} }

func NewInternalHyperlink(slide int) *Hyperlink {
	return &Hyperlink{IsInternal: true, SlideNumber: slide}
}

func (h *Hyperlink) SetTooltip(tip string) *Hyperlink { h.Tooltip = tip; return h }

// Bullet is the list marker of a paragraph. Style is the character of a
// character bullet and NumFormat the autonumber scheme ("arabicPeriod") of
// a numeric one. Size is a percentage of the text size.
type Bullet struct {
	Type      BulletType
	Style     string
	Font      string
	NumFormat string
	StartAt   int
	Color     *Color
	Size      int
}

// BulletType is the kind of paragraph bullet.
type BulletType int

const (
	BulletTypeNone BulletType = iota
	BulletTypeChar
	BulletTypeNumeric
)

// NewBullet returns a "•" bullet in Arial at text size.
func NewBullet() *Bullet {
	return &Bullet{Type: BulletTypeChar, Style: "•", Font: "Arial", Size: 100}
}

func (b *Bullet) SetCharBullet(char, font string) *Bullet {
	b.Type, b.Style, b.Font = BulletTypeChar, char, font
	return b
}

// SetNumericBullet numbers paragraphs from startAt, at least 1.
func (b *Bullet) SetNumericBullet(format string, startAt int) *Bullet {
	b.Type, b.NumFormat, b.StartAt = BulletTypeNumeric, format, max(startAt, 1)
	return b
}

// LineEnd is the arrowhead at one end of a line.
type LineEnd struct {
	Type   ArrowType
	Width  ArrowSize
	Length ArrowSize
}

// ArrowType is the DrawingML line end type.
type ArrowType string

const (
	ArrowNone     ArrowType = "none"
	ArrowTriangle ArrowType = "triangle"
	ArrowStealth  ArrowType = "stealth"
	ArrowDiamond  ArrowType = "diamond"
	ArrowOval     ArrowType = "oval"
	ArrowOpen     ArrowType = "arrow"
)

// ArrowSize is the DrawingML line end width or length.
type ArrowSize string

const (
	ArrowSizeSmall ArrowSize = "sm"
	ArrowSizeMed   ArrowSize = "med"
	ArrowSizeLarge ArrowSize = "lg"
)

func NewLineEnd(t ArrowType) *LineEnd { return &LineEnd{Type: t, Width: ArrowSizeMed, Length: ArrowSizeMed} }
