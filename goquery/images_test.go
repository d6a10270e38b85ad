package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/goquery"
	"github.com/stretchr/testify/assert"
)

func TestImageFinder_FindImages(t *testing.T) {
	t.Parallel()

	t.Run("prefers data-src and keeps raster images in order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<img src="placeholder.gif" data-src="https://img.example.com/a.jpg">
<img src="https://img.example.com/b.PNG?w=800">
<img src="https://img.example.com/logo.svg">
<img src="https://img.example.com/a.jpg">
<img data-src="photos/c.webp">
<img src="">
</body></html>`

		refs := goquery.NewImageFinder().FindImages(html)

		assert.Equal(t, []string{
			"https://img.example.com/a.jpg",
			"https://img.example.com/b.PNG?w=800",
			"photos/c.webp",
		}, refs)
	})

	t.Run("caps the number of references", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<html><body>")
		for i := range emlak.MaxImages + 20 {
			fmt.Fprintf(&b, `<img src="https://img.example.com/%d.jpeg">`, i)
		}
		b.WriteString("</body></html>")

		refs := goquery.NewImageFinder().FindImages(b.String())

		assert.Len(t, refs, emlak.MaxImages)
		assert.Equal(t, "https://img.example.com/0.jpeg", refs[0])
	})

	t.Run("returns nothing for malformed input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.NewImageFinder().FindImages("not html"))
	})
}
