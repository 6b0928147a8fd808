package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/mailer"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	t.Run("frontmatter and body", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate([]byte("---\nsubject: Hello\n---\nBody text"))
		require.NoError(t, err)
		assert.Equal(t, "Hello", tmpl.Metadata["subject"])
		assert.Equal(t, "Body text", tmpl.Body)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate([]byte("Just a body"))
		require.NoError(t, err)
		assert.Empty(t, tmpl.Metadata)
		assert.Equal(t, "Just a body", tmpl.Body)
	})

	t.Run("windows line endings", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate([]byte("---\r\nsubject: Hi\r\n---\r\nBody"))
		require.NoError(t, err)
		assert.Equal(t, "Hi", tmpl.Metadata["subject"])
		assert.Equal(t, "Body", tmpl.Body)
	})

	t.Run("unclosed frontmatter", func(t *testing.T) {
		t.Parallel()

		_, err := mailer.ParseTemplate([]byte("---\nsubject: Hello\nno closing"))
		assert.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := mailer.ParseTemplate([]byte("---\n: : :\n---\nBody"))
		assert.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
	})
}
