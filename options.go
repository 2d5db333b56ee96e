package gopresentation

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
)

// Option configures an export.
type Option func(*config)

type config struct {
	format      WriterType
	logger      *log.Logger
	pack        *LayoutPack
	sniffer     ImageSniffer
	encoder     SpreadsheetEncoder
	archive     ArchiveBuilder
	concurrency int
}

func newConfig(opts []Option) *config {
	c := &config{
		format:      WriterPowerPoint2007,
		logger:      log.New(io.Discard),
		sniffer:     DefaultImageSniffer(),
		encoder:     DefaultSpreadsheetEncoder(),
		archive:     ZipArchiveBuilder(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency < 1 {
		c.concurrency = 1
	}
	return c
}

// WithFormat selects the package format Prepare binds for. NewWriter sets it
// from its format argument.
func WithFormat(f WriterType) Option { return func(c *config) { c.format = f } }

// WithLogger sets the logger for export diagnostics. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLayoutPack overrides the presentation's layout pack for one export.
func WithLayoutPack(p *LayoutPack) Option { return func(c *config) { c.pack = p } }

// WithImageSniffer replaces the magic-byte image sniffer.
func WithImageSniffer(s ImageSniffer) Option { return func(c *config) { c.sniffer = s } }

// WithSpreadsheetEncoder replaces the encoder for embedded chart workbooks.
func WithSpreadsheetEncoder(e SpreadsheetEncoder) Option {
	return func(c *config) { c.encoder = e }
}

// WithArchiveBuilder replaces the ZIP builder that receives the rendered parts.
func WithArchiveBuilder(b ArchiveBuilder) Option { return func(c *config) { c.archive = b } }

// WithConcurrency limits how many parts render at once. 1 renders sequentially.
func WithConcurrency(n int) Option { return func(c *config) { c.concurrency = n } }
