package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFeatures(t *testing.T) {
	t.Run("samsung 4k display", func(t *testing.T) {
		features := ExtractFeatures(`Samsung 65" 4K Display`, "Samsung", "QM65R")

		assert.Contains(t, features, "samsung")
		assert.Contains(t, features, "display")
		assert.Contains(t, features, "4k")
		assert.Contains(t, features, "65")
		assert.Contains(t, features, "qm65r")
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		assert.Empty(t, ExtractFeatures("", "", ""))
		assert.Empty(t, ExtractFeatures("   ", "", ""))
	})

	t.Run("short tokens are dropped but digit runs kept", func(t *testing.T) {
		features := ExtractFeatures("8 ohm in-ceiling speaker", "", "")

		assert.NotContains(t, features, "8 ")
		assert.Contains(t, features, "8")
		assert.Contains(t, features, "speaker")
	})

	t.Run("technical vocabulary matches inside words", func(t *testing.T) {
		features := ExtractFeatures("HDMI2.0 matrix switcher", "", "")

		assert.Contains(t, features, "hdmi")
		assert.Contains(t, features, "matrix")
		assert.Contains(t, features, "switcher")
	})
}

func TestJaccard(t *testing.T) {
	set := func(items ...string) map[string]struct{} {
		s := make(map[string]struct{}, len(items))
		for _, item := range items {
			s[item] = struct{}{}
		}
		return s
	}

	t.Run("identical sets", func(t *testing.T) {
		assert.InDelta(t, 1.0, Jaccard(set("a", "b"), set("a", "b")), 1e-9)
	})

	t.Run("disjoint sets", func(t *testing.T) {
		assert.Zero(t, Jaccard(set("a"), set("b")))
	})

	t.Run("partial overlap", func(t *testing.T) {
		// |{a,b} ∩ {b,c}| = 1, |{a,b} ∪ {b,c}| = 3
		assert.InDelta(t, 1.0/3.0, Jaccard(set("a", "b"), set("b", "c")), 1e-9)
	})

	t.Run("empty set scores zero", func(t *testing.T) {
		assert.Zero(t, Jaccard(nil, set("a")))
		assert.Zero(t, Jaccard(set("a"), nil))
	})
}
