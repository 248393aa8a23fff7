package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductGroupsFixedSet(t *testing.T) {
	assert.Len(t, ProductGroups, 18)

	seen := make(map[string]bool)
	for _, g := range ProductGroups {
		assert.False(t, seen[g], "duplicate group %q", g)
		seen[g] = true
		assert.True(t, IsValidProductGroup(g))
	}
}

func TestIsValidProductGroupRejectsUnknown(t *testing.T) {
	assert.False(t, IsValidProductGroup("Potions"))
	assert.False(t, IsValidProductGroup(""))
	assert.False(t, IsValidProductGroup("serums")) // case-sensitive
}

func TestOrderStatuses(t *testing.T) {
	assert.True(t, IsValidOrderStatus(DefaultOrderStatus))
	for _, s := range OrderStatuses {
		assert.True(t, IsValidOrderStatus(s))
	}
	assert.False(t, IsValidOrderStatus("Teleported"))
	assert.False(t, IsValidOrderStatus(""))
}
