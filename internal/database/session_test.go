package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umarali/bookregistry/internal/config"
	"github.com/umarali/bookregistry/internal/database/users"
	"github.com/umarali/bookregistry/internal/entities"
)

func TestSession_StartsDisconnected(t *testing.T) {
	sess := NewSession(config.Mongo{})

	assert.False(t, sess.IsLoggedIn())

	_, ok := sess.CurrentUser()
	assert.False(t, ok)

	_, err := sess.Database()
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestSession_DisconnectWithoutConnection(t *testing.T) {
	sess := NewSession(config.Mongo{})

	// Must be callable from a shutdown path regardless of state.
	sess.Disconnect(context.Background())
	assert.False(t, sess.IsLoggedIn())
}

func TestConnect_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping dial timeout in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, config.Mongo{URI: "mongodb://127.0.0.1:1", Database: "x"})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

// Store-backed session tests get a database of their own; the session
// owns the fixed "books"/"users" collections inside it.
func setupTestSession(t *testing.T) (*Session, func()) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set; skipping store-backed test")
	}

	dbName := fmt.Sprintf("bookregistry_sess_%s", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "_")))
	sess := NewSession(config.Mongo{URI: uri, Database: dbName})

	cleanup := func() {
		ctx := context.Background()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			_ = client.Database(dbName).Drop(ctx)
			_ = client.Disconnect(ctx)
		}
		sess.Disconnect(ctx)
	}
	return sess, cleanup
}

func TestSession_GuestLogin(t *testing.T) {
	sess, cleanup := setupTestSession(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, sess.LoginAsGuest(ctx))
	assert.False(t, sess.IsLoggedIn())

	// Idempotent; repeat logins re-establish the connection.
	require.NoError(t, sess.LoginAsGuest(ctx))

	_, err := sess.Database()
	assert.NoError(t, err)
}

func TestSession_LoginAsUser(t *testing.T) {
	sess, cleanup := setupTestSession(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, sess.LoginAsGuest(ctx))
	_, err := sess.CreateAccount(ctx, entities.User{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	current, err := sess.LoginAsUser(ctx, entities.User{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "bob", current.Username)
	assert.True(t, sess.IsLoggedIn())

	got, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "bob", got.Username)
}

func TestSession_LoginAsUser_BadCredentials(t *testing.T) {
	sess, cleanup := setupTestSession(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, sess.LoginAsGuest(ctx))
	_, err := sess.CreateAccount(ctx, entities.User{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	_, err = sess.LoginAsUser(ctx, entities.User{Username: "bob", Password: "wrong"})
	assert.True(t, errors.Is(err, users.ErrNotFound))

	// The failed attempt leaves the session as it was.
	assert.False(t, sess.IsLoggedIn())
	_, dbErr := sess.Database()
	assert.NoError(t, dbErr)
}

func TestSession_AccountPredicates(t *testing.T) {
	sess, cleanup := setupTestSession(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, sess.LoginAsGuest(ctx))

	created, err := sess.CreateAccount(ctx, entities.User{Username: "Alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)

	available, err := sess.IsUsernameAvailable(ctx, entities.User{Username: "alice"})
	require.NoError(t, err)
	assert.False(t, available)

	ok, err := sess.IsUser(ctx, entities.User{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sess.IsUser(ctx, entities.User{Username: "alice", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_DisconnectClearsIdentity(t *testing.T) {
	sess, cleanup := setupTestSession(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, sess.LoginAsGuest(ctx))
	_, err := sess.CreateAccount(ctx, entities.User{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	_, err = sess.LoginAsUser(ctx, entities.User{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	sess.Disconnect(ctx)

	assert.False(t, sess.IsLoggedIn())
	_, err = sess.Database()
	assert.True(t, errors.Is(err, ErrUnavailable))
}
