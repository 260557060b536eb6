package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/craftchain-go/internal/infrastructure/database"
)

// NewTestDB opens a private migrated in-memory catalog store, closed when t ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test catalog store")
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

// NewWorkedExampleRepositories returns repositories over a private store
// already holding the worked example catalog.
func NewWorkedExampleRepositories(t testing.TB) *TestRepositories {
	t.Helper()

	repos := NewTestRepositories(NewTestDB(t))
	require.NoError(t, repos.Seed(context.Background(), WorkedExampleItems(), WorkedExampleRecipes()))
	return repos
}
