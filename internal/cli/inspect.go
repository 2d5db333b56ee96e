package cli

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ErrBrokenPackage is returned by inspect --check when a package has parts
// without a content type or relationships pointing at missing parts.
var ErrBrokenPackage = errors.New("broken package")

func newInspectCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the parts and content types of a .pptx or .odp package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zr, err := zip.OpenReader(args[0])
			if err != nil {
				return err
			}
			defer zr.Close()

			pkg, err := readPackage(&zr.Reader)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := pkg.print(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !check {
				return nil
			}
			problems := pkg.check(&zr.Reader)
			logger := loggerFromContext(cmd.Context())
			for _, p := range problems {
				logger.Error(p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d problems", ErrBrokenPackage, len(problems))
			}
			logger.Info("package is consistent", "parts", len(pkg.parts))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "verify content types and relationship targets")
	return cmd
}

type partInfo struct {
	name        string
	method      uint16
	size        uint64
	contentType string
}

type packageInfo struct {
	odp   bool
	parts []partInfo
}

type contentTypesDoc struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

type manifestDoc struct {
	Entries []struct {
		Path      string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"file-entry"`
}

type relationshipsDoc struct {
	Relationships []struct {
		ID         string `xml:"Id,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func readXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

func findFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// readPackage resolves the content type of every part from
// [Content_Types].xml or, for OpenDocument, META-INF/manifest.xml.
func readPackage(zr *zip.Reader) (*packageInfo, error) {
	pkg := &packageInfo{}
	types := make(map[string]string)

	if f := findFile(zr, "[Content_Types].xml"); f != nil {
		var ct contentTypesDoc
		if err := readXML(f, &ct); err != nil {
			return nil, fmt.Errorf("content types: %w", err)
		}
		defaults := make(map[string]string)
		for _, d := range ct.Defaults {
			defaults[strings.ToLower(d.Extension)] = d.ContentType
		}
		for _, o := range ct.Overrides {
			types[strings.TrimPrefix(o.PartName, "/")] = o.ContentType
		}
		for _, f := range zr.File {
			if _, ok := types[f.Name]; !ok {
				ext := strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), ".")
				if t, ok := defaults[ext]; ok {
					types[f.Name] = t
				}
			}
		}
	} else if f := findFile(zr, "META-INF/manifest.xml"); f != nil {
		pkg.odp = true
		var m manifestDoc
		if err := readXML(f, &m); err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		for _, e := range m.Entries {
			types[e.Path] = e.MediaType
		}
	} else {
		return nil, errors.New("neither [Content_Types].xml nor META-INF/manifest.xml found")
	}

	for _, f := range zr.File {
		pkg.parts = append(pkg.parts, partInfo{
			name:        f.Name,
			method:      f.Method,
			size:        f.UncompressedSize64,
			contentType: types[f.Name],
		})
	}
	return pkg, nil
}

func (pkg *packageInfo) print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tSIZE\tMETHOD\tCONTENT TYPE")
	for _, p := range pkg.parts {
		method := "deflate"
		if p.method == zip.Store {
			method = "store"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", p.name, p.size, method, p.contentType)
	}
	return tw.Flush()
}

// check lists parts without a content type and internal relationships whose
// target is not in the package.
func (pkg *packageInfo) check(zr *zip.Reader) []string {
	var problems []string
	names := make(map[string]bool, len(pkg.parts))
	for _, p := range pkg.parts {
		names[p.name] = true
	}
	for _, p := range pkg.parts {
		if p.contentType == "" && !pkg.exempt(p.name) {
			problems = append(problems, fmt.Sprintf("%s: no content type", p.name))
		}
	}
	if pkg.odp {
		return problems
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".rels") {
			continue
		}
		var rels relationshipsDoc
		if err := readXML(f, &rels); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		base := relsSource(f.Name)
		for _, r := range rels.Relationships {
			if r.TargetMode == "External" {
				continue
			}
			target := resolveTarget(base, r.Target)
			if !names[target] {
				problems = append(problems, fmt.Sprintf("%s %s: target %s not in package", f.Name, r.ID, target))
			}
		}
	}
	return problems
}

// exempt reports parts that carry no content type by construction.
func (pkg *packageInfo) exempt(name string) bool {
	if pkg.odp {
		return name == "mimetype" || name == "META-INF/manifest.xml"
	}
	return name == "[Content_Types].xml"
}

// relsSource returns the directory relationship targets in a .rels part
// resolve against: "ppt/slides/_rels/slide1.xml.rels" gives "ppt/slides".
func relsSource(rels string) string {
	dir := path.Dir(path.Dir(rels))
	if dir == "." {
		return ""
	}
	return dir
}

func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return strings.TrimPrefix(path.Join(base, target), "/")
}
