package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "profile path", url: "https://example.com/doctors/dr-rahim", want: "doctors/dr-rahim.txt"},
		{name: "trailing slash becomes index", url: "https://example.com/doctors/", want: "doctors/index.txt"},
		{name: "root path becomes index", url: "https://example.com/", want: "index.txt"},
		{name: "root without slash", url: "https://example.com", want: "index.txt"},
		{name: "ignores query string", url: "https://example.com/doctors/dr-a?ref=search", want: "doctors/dr-a.txt"},
		{name: "rejects path traversal", url: "https://example.com/../../etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	t.Run("reads what FormatPage writes", func(t *testing.T) {
		t.Parallel()

		page := &medroster.Page{
			URL:     "https://example.com/doctors/dr-a",
			Heading: "Dr. A",
			Lines:   []string{"Dr. A", "MBBS, FCPS", "Cardiologist"},
		}

		assert.Equal(t, page, fs.ParsePage(fs.FormatPage(page)))
	})

	t.Run("treats text without header as lines", func(t *testing.T) {
		t.Parallel()

		page := fs.ParsePage("\ufeffDr. A\n\n  Cardiologist  \n")

		assert.Empty(t, page.URL)
		assert.Equal(t, []string{"Dr. A", "Cardiologist"}, page.Lines)
	})
}

func TestDump_Save(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	dump := fs.NewDump(base)

	path, err := dump.Save(&medroster.Page{
		URL:   "https://example.com/doctors/dr-a",
		Lines: []string{"Dr. A"},
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "doctors", "dr-a.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Dr. A\n")
}
