package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "://not-a-dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse connection string")
}
