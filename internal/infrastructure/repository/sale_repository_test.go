package repository

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Concurrent postings sharing products must lock rows in the same sequence,
// so the decrement order has to be independent of map iteration order.
func TestSortedProductIDs(t *testing.T) {
	decrements := make(map[uuid.UUID]int, 8)
	for i := 0; i < 8; i++ {
		decrements[uuid.New()] = i + 1
	}

	first := sortedProductIDs(decrements)
	assert.Len(t, first, len(decrements))
	for i := 1; i < len(first); i++ {
		assert.True(t, bytes.Compare(first[i-1][:], first[i][:]) < 0)
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, sortedProductIDs(decrements))
	}
}
