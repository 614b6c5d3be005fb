// Package script loads narrative script files into line-indexed documents.
//
// A document is the unit of narrative content: an ordered sequence of raw
// text lines, immutable once loaded. Dialogue routinely contains non-Latin
// text, so documents are carried as UTF-8 strings end to end; legacy files
// authored in Shift-JIS are decoded transparently on load.
package script

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/yukidoke/tsugi/pkg/fileutil"
)

// ErrLoad wraps any failure to read or decode a script source.
var ErrLoad = errors.New("script load failed")

// Document is an ordered, line-indexed script. Lines preserve source order
// and nothing is omitted; blank lines classify as comments downstream.
type Document struct {
	Name  string   // source name the document was loaded from
	Lines []string // raw lines, index 0..Len()-1
}

// Len returns the number of lines in the document.
func (d *Document) Len() int {
	return len(d.Lines)
}

// Line returns the raw text of line i, or the empty string when i is out of
// range. Range checks belong to the caller; this accessor just stays safe.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.Lines) {
		return ""
	}
	return d.Lines[i]
}

// Loader reads documents from the scripts directory of a game filesystem.
type Loader struct {
	fsys fileutil.FileSystem
	dir  string
}

// NewLoader creates a Loader over fsys. Documents resolve inside the
// "scripts" directory.
func NewLoader(fsys fileutil.FileSystem) *Loader {
	return &Loader{fsys: fsys, dir: "scripts"}
}

// Load reads the named script into a Document. The name may omit the .txt
// extension. Failures wrap ErrLoad so callers can keep the previous document.
func (l *Loader) Load(name string) (*Document, error) {
	filename := name
	if path.Ext(filename) == "" {
		filename += ".txt"
	}

	data, err := l.fsys.ReadFile(path.Join(l.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, name, err)
	}

	content, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, name, err)
	}

	return &Document{
		Name:  name,
		Lines: splitLines(content),
	}, nil
}

// decode converts file bytes to UTF-8. Valid UTF-8 passes through untouched
// (after BOM stripping); anything else is treated as Shift-JIS.
func decode(data []byte) (string, error) {
	data = stripBOM(data)

	if utf8.Valid(data) {
		return string(data), nil
	}

	reader := transform.NewReader(strings.NewReader(string(data)), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode Shift-JIS: %w", err)
	}
	return string(decoded), nil
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// splitLines splits on LF, tolerating CRLF files. A trailing newline does not
// produce a phantom empty final line.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
