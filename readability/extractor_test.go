package readability_test

import (
	"testing"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements insight.ContentExtractor at compile time.
var _ insight.ContentExtractor = (*readability.Extractor)(nil)

const recipePage = `<!DOCTYPE html>
<html>
<head><title>Sourdough Bread for Beginners</title></head>
<body>
<nav><a href="/recipes">Recipes Nav Link</a><a href="/about">About Nav Link</a></nav>
<aside class="sidebar"><p>Popular posts sidebar</p></aside>
<article>
<h2>Feeding Your Starter</h2>
<p>A healthy sourdough starter doubles in size within eight hours of feeding. Feed it equal weights of flour and water every day.</p>
<ul><li>500g bread flour</li><li>350g water</li><li>10g salt</li></ul>
<p>Shape the dough gently and let it proof overnight in the fridge before baking in a hot dutch oven.</p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("")

	require.Error(t, err)
	assert.Equal(t, insight.EPARSE, insight.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(recipePage)

	require.NoError(t, err)
	assert.Equal(t, "Sourdough Bread for Beginners", result.Title)
}

func TestExtractor_KeepsArticleContent(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(recipePage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "doubles in size within eight hours")
	assert.Contains(t, result.ContentHTML, "Feeding Your Starter")
	assert.Contains(t, result.ContentHTML, "500g bread flour")
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(recipePage)

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "Recipes Nav Link")
	assert.NotContains(t, result.ContentHTML, "Popular posts sidebar")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}
