package gopresentation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Writer is the interface for presentation writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
	WriterODPresentation WriterType = "ODPresentation"
)

// Extension returns the conventional file extension of the format.
func (t WriterType) Extension() string {
	switch t {
	case WriterODPresentation:
		return ".odp"
	default:
		return ".pptx"
	}
}

// NewWriter creates a writer for the given format.
func NewWriter(p *Presentation, format WriterType, opts ...Option) (Writer, error) {
	if p == nil {
		return nil, ErrNilPresentation
	}
	switch format {
	case WriterPowerPoint2007, WriterODPresentation:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithFormat(format))
	return &packageWriter{presentation: p, cfg: newConfig(all)}, nil
}

// packageWriter runs validate, prepare and render, then hands the parts to
// the archive builder.
type packageWriter struct {
	presentation *Presentation
	cfg          *config
}

func (w *packageWriter) parts() ([]Part, error) {
	if err := w.presentation.Validate(); err != nil {
		return nil, err
	}
	b, err := prepare(w.presentation, w.cfg)
	if err != nil {
		return nil, err
	}
	return Render(w.presentation, b)
}

// Save writes the package to path. Every part is rendered before the file
// is created, and the archive is written to a temporary file in the same
// directory that replaces path only on success.
func (w *packageWriter) Save(path string) error {
	parts, err := w.parts()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	buildErr := w.cfg.archive.Build(f, parts)
	closeErr := f.Close()
	if buildErr == nil {
		buildErr = closeErr
	}
	if buildErr == nil {
		buildErr = os.Chmod(tmp, 0644)
	}
	if buildErr == nil {
		buildErr = os.Rename(tmp, path)
	}
	if buildErr != nil {
		os.Remove(tmp)
		return buildErr
	}
	w.cfg.logger.Debug("archive written", "path", path, "parts", len(parts))
	return nil
}

// WriteTo writes the package to a writer.
func (w *packageWriter) WriteTo(out io.Writer) error {
	parts, err := w.parts()
	if err != nil {
		return err
	}
	if err := w.cfg.archive.Build(out, parts); err != nil {
		return err
	}
	w.cfg.logger.Debug("archive written", "parts", len(parts))
	return nil
}

// Render produces every part of the package from the presentation and the
// bindings Prepare returned for it. Parts come back in archive order. The
// bindings must have been prepared for this presentation and its current
// slide list.
func Render(p *Presentation, b *Bindings) ([]Part, error) {
	if p == nil {
		return nil, ErrNilPresentation
	}
	if b == nil || b.presentation != p || len(b.slides) != len(p.slides) {
		return nil, ErrBindingsMismatch
	}
	for i, sb := range b.slides {
		if sb.slide != p.slides[i] {
			return nil, fmt.Errorf("%w: slide %d was replaced", ErrBindingsMismatch, i+1)
		}
		if err := checkGroups(sb.slide.shapes); err != nil {
			return nil, fmt.Errorf("%w: slide %d: %w", ErrBindingsMismatch, i+1, err)
		}
		if sb.slide.note != nil {
			if err := checkGroups(sb.slide.note.shapes); err != nil {
				return nil, fmt.Errorf("%w: slide %d notes: %w", ErrBindingsMismatch, i+1, err)
			}
		}
	}

	ec := newExportContext(b)
	var jobs []partJob
	switch b.format {
	case WriterPowerPoint2007:
		jobs = ec.pptxJobs()
	case WriterODPresentation:
		jobs = ec.odpJobs()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, b.format)
	}
	return renderParts(jobs, b.cfg.concurrency, b.cfg.logger)
}

// partJob renders one archive entry.
type partJob struct {
	path   string
	store  bool
	render func() ([]byte, error)
}

// static returns a job for bytes that are already known.
func static(path string, data []byte) partJob {
	return partJob{path: path, render: func() ([]byte, error) { return data, nil }}
}

// renderParts runs the jobs with at most limit in flight and returns their
// output in job order. The first failure cancels the jobs not yet started.
func renderParts(jobs []partJob, limit int, logger *log.Logger) ([]Part, error) {
	parts := make([]Part, len(jobs))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := job.render()
			if err != nil {
				return &PartError{Path: job.path, Err: err}
			}
			parts[i] = Part{Path: job.path, Data: data, Store: job.store}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, p := range parts {
		logger.Debug("part rendered", "path", p.Path, "bytes", len(p.Data))
	}
	return parts, nil
}
