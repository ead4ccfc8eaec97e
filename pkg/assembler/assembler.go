// Package assembler derives a single self-contained HTML document from a
// project snapshot. Assembly is pure: the same snapshot always yields a
// byte-identical document.
package assembler

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoEntryDocument is returned when the snapshot holds no HTML file.
// Callers show a placeholder instead of a stale preview.
var ErrNoEntryDocument = errors.New("no HTML entry document")

// EntryPath selects the entry HTML file: among paths ending in .html
// (case-insensitive), the first in sorted order whose name contains
// "index", else the first HTML file in sorted order.
func EntryPath(snapshot map[string]string) (string, error) {
	htmlPaths := pathsWithSuffix(snapshot, ".html")
	if len(htmlPaths) == 0 {
		return "", ErrNoEntryDocument
	}
	for _, p := range htmlPaths {
		if strings.Contains(strings.ToLower(p), "index") {
			return p, nil
		}
	}
	return htmlPaths[0], nil
}

// Assemble builds the preview document: the entry HTML file with every CSS
// file inlined into a style block before the first </head> (prepended when
// no marker exists) and every JS file inlined into a script block before
// the first </body> (appended when no marker exists). CSS and JS are
// injected in sorted path order so specificity and execution order do not
// depend on insertion history.
func Assemble(snapshot map[string]string) (string, error) {
	entry, err := EntryPath(snapshot)
	if err != nil {
		return "", err
	}

	doc := snapshot[entry]

	for _, cssPath := range pathsWithSuffix(snapshot, ".css") {
		styleTag := fmt.Sprintf("<style>/* %s */\n%s\n</style>", cssPath, snapshot[cssPath])
		if idx := strings.Index(doc, "</head>"); idx >= 0 {
			doc = doc[:idx] + styleTag + "\n" + doc[idx:]
		} else {
			doc = styleTag + "\n" + doc
		}
	}

	for _, jsPath := range pathsWithSuffix(snapshot, ".js") {
		scriptTag := fmt.Sprintf("<script>/* %s */\n%s\n</script>", jsPath, snapshot[jsPath])
		if idx := strings.Index(doc, "</body>"); idx >= 0 {
			doc = doc[:idx] + scriptTag + "\n" + doc[idx:]
		} else {
			doc = doc + "\n" + scriptTag
		}
	}

	return doc, nil
}

func pathsWithSuffix(snapshot map[string]string, suffix string) []string {
	var paths []string
	for p := range snapshot {
		if strings.HasSuffix(strings.ToLower(p), suffix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
