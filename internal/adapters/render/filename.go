// Package render produces the visual artefacts derived from a report:
// chart pages and export file names.
package render

import (
	"regexp"
	"strings"
)

// DefaultExportName is used when the participant has no name.
const DefaultExportName = "participant"

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName returns the deterministic export file name for a participant,
// e.g. "report_Ana_Souza.pdf".
func FileName(participant, ext string) string {
	name := participant
	if name == "" {
		name = DefaultExportName
	}
	name = whitespaceRun.ReplaceAllString(name, "_")
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return "report_" + name
	}
	return "report_" + name + "." + ext
}
