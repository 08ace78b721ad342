package database

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSourceIsOrdered(t *testing.T) {
	src, err := MigrationSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	r, _, err := src.ReadUp(first)
	require.NoError(t, err)
	defer r.Close()

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CHECK (quantity_available >= 0)")
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS sale_items")

	r2, _, err := src.ReadDown(next)
	require.NoError(t, err)
	defer r2.Close()
}
