package process_test

import (
	"testing"

	"github.com/fwojciec/docdrift/process"
	"github.com/stretchr/testify/assert"
)

func TestKeywords(t *testing.T) {
	t.Parallel()

	t.Run("case-folds and strips punctuation", func(t *testing.T) {
		t.Parallel()

		keywords := process.Keywords("The Auth Service, (v2)!", 0)

		assert.Equal(t, []string{"auth", "service", "v2"}, keywords)
	})

	t.Run("removes stop words", func(t *testing.T) {
		t.Parallel()

		keywords := process.Keywords("a service for the management of tokens", 0)

		assert.Equal(t, []string{"service", "management", "tokens"}, keywords)
	})

	t.Run("dedupes preserving first occurrence order", func(t *testing.T) {
		t.Parallel()

		keywords := process.Keywords("token service token issuance service", 0)

		assert.Equal(t, []string{"token", "service", "issuance"}, keywords)
	})

	t.Run("caps at max", func(t *testing.T) {
		t.Parallel()

		keywords := process.Keywords("alpha beta gamma delta", 2)

		assert.Equal(t, []string{"alpha", "beta"}, keywords)
	})

	t.Run("empty and punctuation-only input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, process.Keywords("", 0))
		assert.Empty(t, process.Keywords("... --- !!!", 0))
	})
}
