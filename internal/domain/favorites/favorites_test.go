package favorites

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestIDSet_Toggle_Involution(t *testing.T) {
	sets := []IDSet{
		{},
		{"p1"},
		{"p1", "p2", "p3"},
	}
	candidates := []string{"p1", "p2", "p9", gofakeit.UUID()}

	for _, s := range sets {
		for _, id := range candidates {
			assert.Equal(t, s.Contains(id), s.Toggle(id).Toggle(id).Contains(id))
			assert.ElementsMatch(t, s, s.Toggle(id).Toggle(id))
		}
	}
}

func TestIDSet_AddIsIdempotent(t *testing.T) {
	s := IDSet{"p1"}.Add("p2").Add("p2").Add("p1")

	assert.Equal(t, IDSet{"p1", "p2"}, s)
}

func TestIDSet_Remove(t *testing.T) {
	assert.Equal(t, IDSet{"p2"}, IDSet{"p1", "p2"}.Remove("p1"))
	assert.Equal(t, IDSet{"p1"}, IDSet{"p1"}.Remove("p9"))
}

func TestIDSet_DoesNotModifyReceiver(t *testing.T) {
	s := make(IDSet, 1, 4)
	s[0] = "p1"

	a := s.Add("p2")
	b := s.Add("p3")

	assert.Equal(t, IDSet{"p1"}, s)
	assert.Equal(t, IDSet{"p1", "p2"}, a)
	assert.Equal(t, IDSet{"p1", "p3"}, b)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, IDSet{"p1", "p2"}, Normalize([]string{"p1", "", "p2", "p1"}))
	assert.Equal(t, IDSet{}, Normalize(nil))
}
