package emlak_test

import (
	"testing"

	"github.com/pelinbingl/emlak"
	"github.com/stretchr/testify/assert"
)

func TestAttributeTable(t *testing.T) {
	t.Parallel()

	t.Run("first writer wins", func(t *testing.T) {
		t.Parallel()

		attrs := emlak.NewAttributeTable()

		assert.True(t, attrs.Set("Oda Sayısı", "3+1"))
		assert.False(t, attrs.Set(" Oda  Sayısı ", "4+1"))

		v, ok := attrs.Get("Oda Sayısı")
		assert.True(t, ok)
		assert.Equal(t, "3+1", v)
		assert.Equal(t, 1, attrs.Len())
	})

	t.Run("skips blank labels", func(t *testing.T) {
		t.Parallel()

		attrs := emlak.NewAttributeTable()

		assert.False(t, attrs.Set("  ", "değer"))
		assert.Zero(t, attrs.Len())
	})

	t.Run("pick walks label spellings and skips blanks", func(t *testing.T) {
		t.Parallel()

		attrs := emlak.NewAttributeTable()
		attrs.Set("m² (Brüt)", " ")
		attrs.Set("Brüt m²", "145")

		v, ok := attrs.Pick("m² (Brüt)", "Brüt m²", "Brüt Metrekare")
		assert.True(t, ok)
		assert.Equal(t, "145", v)

		_, ok = attrs.Pick("Net m²")
		assert.False(t, ok)
	})

	t.Run("labels keep insertion order", func(t *testing.T) {
		t.Parallel()

		attrs := emlak.NewAttributeTable()
		attrs.Set("Isıtma", "Kombi")
		attrs.Set("Bina Yaşı", "5")

		labels := attrs.Labels()
		assert.Equal(t, []string{"Isıtma", "Bina Yaşı"}, labels)

		labels[0] = "changed"
		assert.Equal(t, "Isıtma", attrs.Labels()[0])
	})

	t.Run("nil table is empty", func(t *testing.T) {
		t.Parallel()

		var attrs *emlak.AttributeTable

		_, ok := attrs.Get("Isıtma")
		assert.False(t, ok)
		assert.Zero(t, attrs.Len())
		assert.Nil(t, attrs.Labels())
	})
}
