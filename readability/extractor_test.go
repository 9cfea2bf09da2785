package readability_test

import (
	"testing"

	"github.com/fwojciec/qagent"
	"github.com/fwojciec/qagent/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Shipping Rules</title></head><body>
<div id="sidebar"><a href="/a">A</a><a href="/b">B</a></div>
<article><h1>Shipping Rules</h1>
<p>Standard shipping is free on every order and takes five to seven business days to arrive at the address entered during checkout.</p>
<p>Express shipping adds ten dollars to the order total and is delivered within two business days for all supported regions.</p>
</article></body></html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Shipping Rules", result.Title)
		assert.Contains(t, result.ContentHTML, "Express shipping")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract(" ")

		assert.Equal(t, qagent.EINVALID, qagent.ErrorCode(err))
	})
}
