package goldmark_test

import (
	"testing"

	"github.com/fwojciec/qagent/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("strips inline markup", func(t *testing.T) {
		t.Parallel()

		result, err := goldmark.NewNormalizer().Normalize("Use **SAVE15** for _15%_ off, see [terms](https://example.com).")

		require.NoError(t, err)
		assert.Equal(t, "Use SAVE15 for 15% off, see terms.", result.Text)
	})

	t.Run("returns first heading as title", func(t *testing.T) {
		t.Parallel()

		src := "# Product Specs\n\nIntro.\n\n## Shipping\n\nExpress costs $10."

		result, err := goldmark.NewNormalizer().Normalize(src)

		require.NoError(t, err)
		assert.Equal(t, "Product Specs", result.Title)
		assert.Equal(t, "Product Specs\n\nIntro.\n\nShipping\n\nExpress costs $10.", result.Text)
	})

	t.Run("keeps code block content", func(t *testing.T) {
		t.Parallel()

		src := "Example:\n\n```\napplyDiscount('SAVE15')\n```\n"

		result, err := goldmark.NewNormalizer().Normalize(src)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "applyDiscount('SAVE15')")
	})

	t.Run("separates list items", func(t *testing.T) {
		t.Parallel()

		result, err := goldmark.NewNormalizer().Normalize("- Credit Card\n- PayPal\n")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Credit Card")
		assert.Contains(t, result.Text, "PayPal")
		assert.NotContains(t, result.Text, "Credit CardPayPal")
	})

	t.Run("empty input yields empty text", func(t *testing.T) {
		t.Parallel()

		result, err := goldmark.NewNormalizer().Normalize("")

		require.NoError(t, err)
		assert.Empty(t, result.Text)
		assert.Empty(t, result.Title)
	})
}
