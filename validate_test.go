package gopresentation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	p := New()
	if err := p.Validate(); err != nil {
		t.Errorf("valid presentation should pass validation: %v", err)
	}

	tests := []struct {
		name  string
		build func(p *Presentation)
		want  error
		text  string
	}{
		{
			name: "negative width",
			build: func(p *Presentation) {
				p.GetActiveSlide().CreateRichTextShape().SetSize(-100, Inch(1))
			},
			want: ErrInvalidPresentation,
			text: "slide 1 shape 1: width is negative",
		},
		{
			name:  "drawing without data",
			build: func(p *Presentation) { p.GetActiveSlide().CreateDrawingShape() },
			want:  ErrImageSource,
		},
		{
			name:  "chart without type",
			build: func(p *Presentation) { p.GetActiveSlide().CreateChartShape() },
			want:  ErrInvalidPresentation,
			text:  "chart shape has no chart type set",
		},
		{
			name: "chart type without writer",
			build: func(p *Presentation) {
				p.GetActiveSlide().CreateChartShape().GetPlotArea().SetType(&funnelChart{})
			},
			want: ErrUnsupportedChartType,
		},
		{
			name: "link in a group",
			build: func(p *Presentation) {
				inner := NewAutoShape()
				inner.SetHyperlink(NewInternalHyperlink(3))
				p.GetActiveSlide().CreateGroup().AddShape(inner)
			},
			want: ErrInvalidHyperlink,
			text: "slide 1 shape 1.1",
		},
		{
			name: "run link in notes",
			build: func(p *Presentation) {
				p.GetActiveSlide().CreateNote().CreateRichTextShape().CreateTextRun("x").SetHyperlink(NewHyperlink(""))
			},
			want: ErrInvalidHyperlink,
			text: "slide 1 notes",
		},
		{
			name: "group contains itself",
			build: func(p *Presentation) {
				g := p.GetActiveSlide().CreateGroup()
				g.AddShape(NewAutoShape()).AddShape(g)
			},
			want: ErrGroupCycle,
		},
		{
			name: "group cycle through a nested group",
			build: func(p *Presentation) {
				outer := p.GetActiveSlide().CreateGroup()
				inner := NewGroupShape()
				outer.AddShape(inner)
				inner.AddShape(outer)
			},
			want: ErrGroupCycle,
		},
		{
			name: "NaN chart value",
			build: func(p *Presentation) {
				s := NewChartSeriesOrdered("s", []string{"a"}, []float64{math.NaN()})
				p.GetActiveSlide().CreateChartShape().GetPlotArea().SetType(NewLineChart().AddSeries(s))
			},
			want: ErrInvalidChartValue,
			text: `series "s" category "a" is NaN`,
		},
		{
			name: "infinite axis bound",
			build: func(p *Presentation) {
				s := NewChartSeriesOrdered("s", []string{"a"}, []float64{1})
				c := p.GetActiveSlide().CreateChartShape()
				c.GetPlotArea().SetType(NewLineChart().AddSeries(s))
				c.GetPlotArea().GetAxisY().SetBounds(0, math.Inf(1))
			},
			want: ErrInvalidChartValue,
			text: "y axis maximum is +Inf",
		},
		{
			name:  "bad MIME hint",
			build: func(p *Presentation) { p.GetActiveSlide().CreateDrawingShape().SetImageData(testPNG(), "text/plain") },
			want:  ErrUnsupportedImage,
		},
		{
			name:  "bad language",
			build: func(p *Presentation) { p.GetDocumentProperties().Language = "not a tag!" },
			want:  ErrInvalidPresentation,
			text:  "document language",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.build(p)
			err := p.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidPresentation) {
				t.Errorf("every validation error matches ErrInvalidPresentation")
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Errorf("error %q does not mention %q", err, tt.text)
			}
		})
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	p := New()
	s := p.GetActiveSlide()
	s.CreateDrawingShape()
	s.CreateChartShape()
	p.CreateSlide().CreateAutoShape().SetHyperlink(NewInternalHyperlink(0))

	var ve *ValidationError
	if !errors.As(p.Validate(), &ve) {
		t.Fatal("expected a ValidationError")
	}
	if len(ve.Problems) != 3 {
		t.Errorf("expected 3 problems, got %d: %v", len(ve.Problems), ve.Problems)
	}
}
