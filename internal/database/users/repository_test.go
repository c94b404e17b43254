package users

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store-backed tests run against the MongoDB named by MONGO_TEST_URI
// and skip when it is unset. Each test gets its own collection.
func setupTestRepo(t *testing.T) (*Repository, func()) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set; skipping store-backed test")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	name := "users_" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "_"))
	coll := client.Database("bookregistry_test").Collection(name)
	require.NoError(t, coll.Drop(ctx))

	cleanup := func() {
		_ = coll.Drop(ctx)
		_ = client.Disconnect(ctx)
	}
	return NewRepository(coll), cleanup
}

func TestRepository_Create_NormalizesUsername(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	account, err := repo.Create(ctx, "Alice", "pw1")
	require.NoError(t, err)

	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "pw1", account.Password)

	stored, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
}

func TestRepository_CredentialPredicates(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "pw1")
	require.NoError(t, err)

	available, err := repo.UsernameAvailable(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = repo.UsernameAvailable(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, available)

	ok, err := repo.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Authenticate(ctx, "nobody", "pw1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.Get(context.Background(), "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}
