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

func TestCommentRepository_CRUD(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCommentRepository(testDB.DB)
	ctx := context.Background()

	sender, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// No post with this id exists.
	comment := &domain.Comment{ID: uuid.New(), PostID: uuid.New(), Message: "orphan", Sender: sender.ID}
	require.NoError(t, repo.Create(ctx, comment))

	found, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.PostID, found.PostID)

	newPost := uuid.New()
	found.PostID = newPost
	found.Message = "moved"
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, newPost, reloaded.PostID)
	assert.Equal(t, "moved", reloaded.Message)
	assert.Equal(t, sender.ID, reloaded.Sender)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	_, err = repo.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, comment.ID), domain.ErrNotFound)
}

func TestCommentRepository_ListByPost(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCommentRepository(testDB.DB)
	ctx := context.Background()

	sender, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	postA, postB := uuid.New(), uuid.New()

	base := time.Now().Add(-time.Hour)
	for i, c := range []*domain.Comment{
		{ID: uuid.New(), PostID: postA, Message: "a1", Sender: sender.ID},
		{ID: uuid.New(), PostID: postB, Message: "b1", Sender: sender.ID},
		{ID: uuid.New(), PostID: postA, Message: "a2", Sender: sender.ID},
	} {
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.List(ctx, domain.CommentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "a2", all[0].Message)

	forA, err := repo.List(ctx, domain.CommentFilter{PostID: &postA})
	require.NoError(t, err)
	require.Len(t, forA, 2)
	assert.Equal(t, "a2", forA[0].Message)
	assert.Equal(t, "a1", forA[1].Message)
}
