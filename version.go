package gopresentation

import "fmt"

// Version information for the GoDeck library.
const (
	VersionMajor = 1
	VersionMinor = 1
	VersionPatch = 0
)

// Version is the full version string, written to app.xml and meta.xml.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
