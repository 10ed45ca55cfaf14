package search

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyPattern(t *testing.T) {
	t.Run("single word interleaves letters", func(t *testing.T) {
		assert.Equal(t, "(?i)c.*a.*t", FuzzyPattern("cat"))
	})

	t.Run("empty query yields empty pattern", func(t *testing.T) {
		assert.Equal(t, "", FuzzyPattern("   "))
	})

	t.Run("is deterministic", func(t *testing.T) {
		first := FuzzyPattern("mask")
		second := FuzzyPattern("mask")
		assert.Equal(t, first, second)
	})

	t.Run("escapes regex metacharacters", func(t *testing.T) {
		pattern := FuzzyPattern("a+b")
		re, err := regexp.Compile(pattern)
		require.NoError(t, err)
		assert.True(t, re.MatchString("xxa+bxx"))
	})

	t.Run("single word pattern matches interleaved value", func(t *testing.T) {
		re, err := regexp.Compile(FuzzyPattern("cat"))
		require.NoError(t, err)
		assert.True(t, re.MatchString("Catheter"))
		assert.True(t, re.MatchString("Curing Agent Tray"))
		assert.False(t, re.MatchString("dog"))
	})
}

func TestMatcher(t *testing.T) {
	t.Run("nil for empty query", func(t *testing.T) {
		assert.Nil(t, NewMatcher("   "))
	})

	t.Run("single word matches interleaved letters", func(t *testing.T) {
		m := NewMatcher("cat")
		require.NotNil(t, m)
		assert.True(t, m.MatchString("Catheter"))
		assert.True(t, m.MatchString("Curing Agent Tray"))
		assert.False(t, m.MatchString("dog"))
	})

	t.Run("multi word requires every word in any order", func(t *testing.T) {
		m := NewMatcher("dental kit")
		require.NotNil(t, m)
		assert.True(t, m.MatchString("Kit for Dental Surgery"))
		assert.True(t, m.MatchString("DENTAL KIT"))
		assert.False(t, m.MatchString("Dental Mirror"))
	})

	t.Run("multi word matches words inside longer words", func(t *testing.T) {
		m := NewMatcher("sur kit")
		require.NotNil(t, m)
		assert.True(t, m.MatchString("Surgical Kit"))
	})
}

func TestLikePatterns(t *testing.T) {
	assert.Equal(t, []string{"%c%a%t%"}, LikePatterns("cat"))
	assert.Equal(t, []string{"%dental%", "%kit%"}, LikePatterns("dental kit"))
	assert.Nil(t, LikePatterns("  "))
}

func TestFieldScore(t *testing.T) {
	t.Run("exact match wins its tier only", func(t *testing.T) {
		assert.Equal(t, 100, FieldScore("dental kit", "dental kit"))
	})

	t.Run("prefix match", func(t *testing.T) {
		assert.Equal(t, 75, FieldScore("dental", "dental scaler kit"))
	})

	t.Run("interior phrase match", func(t *testing.T) {
		assert.Equal(t, 50, FieldScore("scaler", "dental scaler kit"))
	})

	t.Run("all words out of order", func(t *testing.T) {
		assert.Equal(t, 25, FieldScore("kit dental", "dental scaler kit"))
	})

	t.Run("any word only", func(t *testing.T) {
		assert.Equal(t, 10, FieldScore("dental drill", "drill bits"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, 0, FieldScore("forceps", "dental scaler"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, FieldScore("dental", "Dental Kit"), FieldScore("DENTAL", "dental kit"))
	})
}

func TestScoreSumsAcrossFields(t *testing.T) {
	t.Run("exact name plus description phrase", func(t *testing.T) {
		fields := []string{"dental kit", "a complete dental kit with tray"}
		assert.Equal(t, 150, Score("dental kit", fields))
	})

	t.Run("fields compound", func(t *testing.T) {
		fields := []string{"dental scaler", "high quality dental scaler for clinics"}
		total := Score("dental scaler", fields)
		assert.Equal(t, FieldScore("dental scaler", fields[0])+FieldScore("dental scaler", fields[1]), total)
		assert.Greater(t, total, FieldScore("dental scaler", fields[0]))
	})
}

func TestAllocateBudget(t *testing.T) {
	t.Run("proportional split", func(t *testing.T) {
		assert.Equal(t, []int{6, 3, 1}, AllocateBudget(10, []int{60, 30, 10}))
	})

	t.Run("non-empty sets get at least one slot", func(t *testing.T) {
		allocations := AllocateBudget(10, []int{100, 1, 1})
		assert.Equal(t, 1, allocations[1])
		assert.Equal(t, 1, allocations[2])
		assert.Equal(t, 9, allocations[0])
	})

	t.Run("empty sets get nothing", func(t *testing.T) {
		assert.Equal(t, []int{10, 0, 0}, AllocateBudget(10, []int{50, 0, 0}))
	})

	t.Run("allocation capped at set size", func(t *testing.T) {
		assert.Equal(t, []int{2, 3}, AllocateBudget(10, []int{2, 3}))
	})

	t.Run("zero budget", func(t *testing.T) {
		assert.Equal(t, []int{0, 0}, AllocateBudget(0, []int{5, 5}))
	})

	t.Run("all empty", func(t *testing.T) {
		assert.Equal(t, []int{0, 0}, AllocateBudget(10, []int{0, 0}))
	})
}
