package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelinbingl/emlak"
	emlakfs "github.com/pelinbingl/emlak/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{
			name:    "utf-8 page",
			content: []byte(`<html><head><meta charset="utf-8"></head><h1>Satılık Daire</h1></html>`),
			want:    "Satılık Daire",
		},
		{
			name:    "byte order mark stripped",
			content: []byte("\xef\xbb\xbf<html><h1>Kiralık Ev</h1></html>"),
			want:    "<html><h1>Kiralık Ev</h1>",
		},
		{
			name:    "legacy Turkish charset decoded",
			content: []byte(`<html><head><meta charset="iso-8859-9"></head><h1>I` + "\xfe\xfd" + `k</h1></html>`),
			want:    "Işık",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "ilan.html")
			require.NoError(t, os.WriteFile(path, tt.content, 0644))

			html, err := emlakfs.ReadHTML(path)

			require.NoError(t, err)
			assert.Contains(t, html, tt.want)
			assert.NotContains(t, html, "\ufeff")
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := emlakfs.ReadHTML(filepath.Join(t.TempDir(), "yok.html"))

		require.Error(t, err)
		assert.Equal(t, emlak.ENOTFOUND, emlak.ErrorCode(err))
	})
}

func TestSavedAssetsDir(t *testing.T) {
	t.Parallel()

	t.Run("finds files folder", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "ilan_files"), 0755))

		assert.Equal(t, filepath.Join(dir, "ilan_files"), emlakfs.SavedAssetsDir(filepath.Join(dir, "ilan.html")))
	})

	t.Run("finds localized folder", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "ilan_dosyalar"), 0755))

		assert.Equal(t, filepath.Join(dir, "ilan_dosyalar"), emlakfs.SavedAssetsDir(filepath.Join(dir, "ilan.htm")))
	})

	t.Run("ignores plain file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ilan_files"), nil, 0644))

		assert.Empty(t, emlakfs.SavedAssetsDir(filepath.Join(dir, "ilan.html")))
	})

	t.Run("no folder", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, emlakfs.SavedAssetsDir(filepath.Join(t.TempDir(), "ilan.html")))
	})
}
