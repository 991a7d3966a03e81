package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	word := []rune("kat")
	s := NewStatus(word, 3)
	word[0] = 'x'
	assert.Equal(t, "kat", string(s.Word()), "status keeps its own copy")

	w := s.Word()
	w[0] = 'z'
	assert.Equal(t, "kat", string(s.Word()))
	assert.Equal(t, 3, s.WordLen())

	assert.False(t, s.Add([]rune("kat")), "original word")
	assert.True(t, s.Add([]rune("cat")))
	assert.False(t, s.Add([]rune("cat")), "duplicate")
	assert.True(t, s.Add([]rune("hat")))
	assert.False(t, s.ShouldAbort())
	assert.True(t, s.Add([]rune("bat")))
	assert.True(t, s.ShouldAbort())
	assert.False(t, s.Add([]rune("mat")), "full")

	assert.Equal(t, []string{"cat", "hat", "bat"}, s.Suggestions())
	assert.Equal(t, 3, s.Len())
}

func TestStatusCost(t *testing.T) {
	s := NewStatus([]rune("kat"), 0)
	for i := 0; i < 100; i++ {
		s.Charge()
	}
	assert.False(t, s.ShouldAbort(), "no limit by default")
	assert.Equal(t, 100, s.Cost())

	s.SetMaxCost(101)
	assert.False(t, s.ShouldAbort())
	s.Charge()
	assert.True(t, s.ShouldAbort())
}
