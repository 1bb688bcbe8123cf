//go:build integration_test || all_tests

package users_test

import (
	"context"
	"testing"

	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/users"
	testingpkg "github.com/2beens/bloghub/pkg/testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo(t *testing.T) {
	pg := testingpkg.StartPostgres(t)
	defer pg.Close()

	ctx := context.Background()
	repo := users.NewRepo(pg.Pool)

	for _, username := range []string{"carol", "alice", "bob"} {
		require.NoError(t, repo.AddUser(ctx, users.User{
			Username:  username,
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
		}))
	}
	// adding twice is a no-op
	require.NoError(t, repo.AddUser(ctx, users.User{Username: "alice"}))

	usernames, err := repo.Usernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, usernames)

	exists, err := repo.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.UserExists(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.AddFollow(ctx, "alice", "carol"))
	require.NoError(t, repo.AddFollow(ctx, "alice", "bob"))
	require.NoError(t, repo.AddFollow(ctx, "alice", "bob"))

	var validationErr *errs.ValidationError
	assert.ErrorAs(t, repo.AddFollow(ctx, "alice", "alice"), &validationErr)
	assert.ErrorIs(t, repo.AddFollow(ctx, "alice", "nobody"), errs.ErrNotFound)

	following, err := repo.Following(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, following)

	following, err = repo.Following(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, following)
}
