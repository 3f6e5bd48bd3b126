// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orderedset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := New[string]()
	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"), "duplicate insert should report false")
	assert.True(t, s.Add("c"))

	assert.Equal(t, []string{"b", "a", "c"}, s.Items())
	assert.Equal(t, 3, s.Len())
}

func TestContains(t *testing.T) {
	s := New[int]()
	s.Add(7)
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
}

func TestItemsReturnsCopy(t *testing.T) {
	s := New[string]()
	s.Add("x")
	s.Add("y")

	items := s.Items()
	items[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, s.Items())
}

func TestEmptySet(t *testing.T) {
	s := New[string]()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
}
