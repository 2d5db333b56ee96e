package gopresentation

import (
	"archive/zip"
	"fmt"
	"hash/crc32"
	"io"
)

// Part is one file of a rendered package.
type Part struct {
	Path string
	Data []byte
	// Store disables compression. ODP requires it for the mimetype entry.
	Store bool
}

// ArchiveBuilder writes rendered parts to w as a single archive, in the
// order given.
type ArchiveBuilder interface {
	Build(w io.Writer, parts []Part) error
}

// ArchiveBuilderFunc adapts a function to ArchiveBuilder.
type ArchiveBuilderFunc func(w io.Writer, parts []Part) error

// Build calls f(w, parts).
func (f ArchiveBuilderFunc) Build(w io.Writer, parts []Part) error { return f(w, parts) }

// ZipArchiveBuilder returns the default ZIP builder. Entries carry no
// modification time so identical input yields identical bytes.
func ZipArchiveBuilder() ArchiveBuilder { return ArchiveBuilderFunc(buildZip) }

func buildZip(w io.Writer, parts []Part) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if seen[p.Path] {
			return fmt.Errorf("duplicate archive entry %s", p.Path)
		}
		seen[p.Path] = true

		var fw io.Writer
		var err error
		if p.Store {
			// Stored entries carry their sizes in the local header, with no
			// data descriptor, so the ODF mimetype sits at a fixed offset.
			fw, err = zw.CreateRaw(&zip.FileHeader{
				Name:               p.Path,
				Method:             zip.Store,
				CRC32:              crc32.ChecksumIEEE(p.Data),
				CompressedSize64:   uint64(len(p.Data)),
				UncompressedSize64: uint64(len(p.Data)),
			})
		} else {
			fw, err = zw.CreateHeader(&zip.FileHeader{Name: p.Path, Method: zip.Deflate})
		}
		if err != nil {
			return fmt.Errorf("failed to create %s in zip: %w", p.Path, err)
		}
		if _, err := fw.Write(p.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", p.Path, err)
		}
	}
	return zw.Close()
}
