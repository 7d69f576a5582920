package postgresql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsReturnsItsConnection(t *testing.T) {
	setup := NewTestDatabase(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, setup.DB.RunMigrations())
	}
	assert.Zero(t, setup.DB.Stat().AcquiredConns(), "migrations must release every pool connection")
}
