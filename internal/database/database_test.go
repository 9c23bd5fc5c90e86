package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheIndexesAreDistinct(t *testing.T) {
	// The indexes are wire contracts with the deployed valkey instance;
	// reordering them would silently cross cache categories.
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, SESSION_CACHE_INDEX)
	assert.Equal(t, 2, USER_CACHE_INDEX)
	assert.Equal(t, 3, STATUS_CACHE_INDEX)
	assert.Equal(t, 4, EVENTS_CACHE_INDEX)
}

func TestCacheBuilderRequiresKeyAndValue(t *testing.T) {
	err := NewCacheBuilder(nil, "").WithValue("x").Set()
	assert.ErrorContains(t, err, "key is required")

	err = NewCacheBuilder(nil, "some-key").Set()
	assert.ErrorContains(t, err, "value is required")

	var out string
	_, err = NewCacheBuilder(nil, "").Get(&out)
	assert.ErrorContains(t, err, "key is required")
}

func TestCacheBuilderWithStructMarshalFailure(t *testing.T) {
	err := NewCacheBuilder(nil, "bad-value").WithStruct(make(chan int)).Set()
	assert.ErrorContains(t, err, "failed to marshal value")
}

func TestCacheBuilderRejectsMissingClient(t *testing.T) {
	err := NewCacheBuilder(nil, "some-key").WithValue("x").Set()
	assert.ErrorContains(t, err, "cache client is not configured")

	var out string
	_, err = NewCacheBuilder(nil, "some-key").Get(&out)
	assert.ErrorContains(t, err, "cache client is not configured")

	_, err = NewCacheBuilder(nil, "some-counter").Increment()
	assert.ErrorContains(t, err, "cache client is not configured")
}
