package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements insight.Converter at compile time.
var _ insight.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Running Shoes</h1><h2>Road</h2><h3>Cushioning</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Running Shoes")
		assert.Contains(t, md, "## Road")
		assert.Contains(t, md, "### Cushioning")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>Grip</li><li>Weight</li></ul><ol><li>Measure</li><li>Try on</li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Grip")
		assert.Contains(t, md, "- Weight")
		assert.Contains(t, md, "1. Measure")
		assert.Contains(t, md, "2. Try on")
	})

	t.Run("converts links and emphasis", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Read our <a href="https://shop.example/sizing">sizing guide</a> for <strong>wide</strong> feet.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[sizing guide](https://shop.example/sizing)")
		assert.Contains(t, md, "**wide**")
	})

	t.Run("converts comparison tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Shoe</th><th>Drop</th></tr></thead>
<tbody><tr><td>Ghost</td><td>12mm</td></tr><tr><td>Torin</td><td>0mm</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Shoe")
		assert.Contains(t, md, "Torin")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("drops images and navigation", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<nav><a href="/">Home Link</a></nav>
<p>Lightweight trainers for daily miles.</p>
<img src="/shoe.jpg" alt="Shoe photo">
<form><button>Add to cart</button></form>
</div>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Lightweight trainers for daily miles.", md)
	})

	t.Run("returns EPARSE for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert(" \n")

		require.Error(t, err)
		assert.Equal(t, insight.EPARSE, insight.ErrorCode(err))
	})
}
