// Package fs reads saved listing pages and writes per-listing folders:
// the listing's images, its meta.json and a one-row listing.csv.
package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelinbingl/emlak"
	"golang.org/x/net/html/charset"
)

// ReadHTML reads a saved page and decodes it to UTF-8. The encoding is
// taken from a byte order mark or <meta charset> declaration, defaulting to
// UTF-8. Invalid sequences are replaced.
func ReadHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", emlak.Errorf(emlak.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return "", err
	}

	enc, name, _ := charset.DetermineEncoding(data, "text/html")
	if name != "utf-8" {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}

	s := strings.TrimPrefix(string(data), "\ufeff")
	return strings.ToValidUTF8(s, "\uFFFD"), nil
}

// savedAssetSuffixes are the companion folder suffixes browsers use for
// "save page, complete". Turkish Chrome localizes the English one.
var savedAssetSuffixes = []string{"_files", "_dosyalar"}

// SavedAssetsDir returns the folder holding the downloaded assets of a
// saved page, e.g. "ilan_files" next to "ilan.html", or "" when there is
// none.
func SavedAssetsDir(path string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, suffix := range savedAssetSuffixes {
		dir := stem + suffix
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
