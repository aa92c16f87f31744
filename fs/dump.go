package fs

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/medroster"
)

// URLToPath converts a profile URL to a relative file path.
// Example: https://example.com/doctors/dr-a → doctors/dr-a.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	p := u.Path
	if p == "" || p == "/" {
		return "index.txt", nil
	}
	if strings.HasSuffix(p, "/") {
		p += "index"
	}

	clean := path.Clean(strings.TrimPrefix(p, "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", medroster.Errorf(medroster.EINVALID, "path traversal in URL %q", rawURL)
	}
	return clean + ".txt", nil
}

// FormatPage renders a page as its URL, heading and lines, one per line.
// ParsePage reads the same format back.
func FormatPage(page *medroster.Page) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(page.URL)
	b.WriteString("\n# ")
	b.WriteString(page.Heading)
	b.WriteString("\n")
	for _, line := range page.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ParsePage reads text written by FormatPage. Text without the header is
// treated as bare lines.
func ParsePage(text string) *medroster.Page {
	text = strings.TrimPrefix(text, "\ufeff")
	page := &medroster.Page{}
	rest := text
	if u, after, ok := cutHeader(rest); ok {
		page.URL = u
		rest = after
		if h, after, ok := cutHeader(rest); ok {
			page.Heading = h
			rest = after
		}
	}
	page.Lines = medroster.SplitLines(rest)
	return page
}

func cutHeader(text string) (value, rest string, ok bool) {
	if !strings.HasPrefix(text, "# ") {
		return "", text, false
	}
	line, rest, _ := strings.Cut(text[2:], "\n")
	return strings.TrimSpace(line), rest, true
}

// Dump writes pages as text files under a directory, mirroring URL paths.
type Dump struct {
	baseDir string
}

// NewDump creates a Dump rooted at baseDir.
func NewDump(baseDir string) *Dump {
	return &Dump{baseDir: baseDir}
}

// Save writes the page and returns the file path.
func (d *Dump) Save(page *medroster.Page) (string, error) {
	rel, err := URLToPath(page.URL)
	if err != nil {
		return "", err
	}
	full := filepath.Join(d.baseDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, []byte(FormatPage(page)), 0o644); err != nil {
		return "", fmt.Errorf("dump %s: %w", page.URL, err)
	}
	return full, nil
}
