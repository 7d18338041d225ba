package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/repository/postgres"
	"github.com/dom/postboard/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CRUD(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPostRepository(testDB.DB)
	ctx := context.Background()

	sender, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := &domain.Post{ID: uuid.New(), Message: "first", Sender: sender.ID}
	require.NoError(t, repo.Create(ctx, post))

	found, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", found.Message)
	assert.Equal(t, sender.ID, found.Sender)
	assert.False(t, found.CreatedAt.IsZero())

	found.Message = "edited"
	found.Sender = uuid.New() // ignored by Update
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Message)
	assert.Equal(t, sender.ID, reloaded.Sender)

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, post), domain.ErrNotFound)
}

func TestPostRepository_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPostRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Now().Add(-time.Hour)
	for i, p := range []*domain.Post{
		{ID: uuid.New(), Message: "alice old", Sender: alice.ID},
		{ID: uuid.New(), Message: "bob", Sender: bob.ID},
		{ID: uuid.New(), Message: "alice new", Sender: alice.ID},
	} {
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, p))
	}

	tests := []struct {
		name     string
		filter   domain.PostFilter
		messages []string
	}{
		{
			name:     "all posts newest first",
			messages: []string{"alice new", "bob", "alice old"},
		},
		{
			name:     "by sender",
			filter:   domain.PostFilter{Sender: &alice.ID},
			messages: []string{"alice new", "alice old"},
		},
		{
			name:     "sender without posts",
			filter:   domain.PostFilter{Sender: ptr(uuid.New())},
			messages: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			messages := make([]string, 0, len(posts))
			for _, p := range posts {
				messages = append(messages, p.Message)
			}
			assert.Equal(t, tt.messages, messages)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
