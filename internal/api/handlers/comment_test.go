package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/postboard/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentBody struct {
	ID      string `json:"id"`
	PostID  string `json:"postId"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

func TestCommentHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("comment on a post that does not exist", func(t *testing.T) {
		postID := uuid.NewString()
		resp := testutil.Do(t, http.MethodPost, ts.URL("/comments"), map[string]string{
			"postId":  postID,
			"message": "first!",
			"sender":  uuid.NewString(),
		}, tokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var comment commentBody
		testutil.AssertJSONResponse(t, resp, &comment)
		assert.Equal(t, postID, comment.PostID)
		assert.Equal(t, "first!", comment.Message)
		assert.Equal(t, user.ID.String(), comment.Sender)
	})

	t.Run("missing post id", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPost, ts.URL("/comments"), map[string]string{"message": "x"}, tokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Post ID and message are required")
	})

	t.Run("malformed post id", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPost, ts.URL("/comments"), map[string]string{"postId": "abc", "message": "x"}, tokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid post id")
	})
}

func TestCommentHandler_ListAndOwnership(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerTokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherTokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	postA, postB := uuid.NewString(), uuid.NewString()
	create := func(postID, message string) commentBody {
		resp := testutil.Do(t, http.MethodPost, ts.URL("/comments"), map[string]string{"postId": postID, "message": message}, ownerTokens.AccessToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var comment commentBody
		testutil.AssertJSONResponse(t, resp, &comment)
		return comment
	}

	first := create(postA, "a1")
	create(postB, "b1")
	create(postA, "a2")

	t.Run("list by post newest first", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodGet, ts.URL("/comments?postId="+postA), nil, otherTokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var comments []commentBody
		testutil.AssertJSONResponse(t, resp, &comments)
		require.Len(t, comments, 2)
		assert.Equal(t, "a2", comments[0].Message)
		assert.Equal(t, "a1", comments[1].Message)
	})

	t.Run("malformed post filter", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodGet, ts.URL("/comments?postId=abc"), nil, otherTokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("other user update is forbidden", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPut, ts.URL("/comments/"+first.ID), map[string]string{"postId": postA, "message": "hijacked"}, otherTokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Not authorized to modify this resource")

		get := testutil.Do(t, http.MethodGet, ts.URL("/comments/"+first.ID), nil, otherTokens.AccessToken)
		defer get.Body.Close()
		var stored commentBody
		testutil.AssertJSONResponse(t, get, &stored)
		assert.Equal(t, "a1", stored.Message)
	})

	t.Run("other user delete is forbidden", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodDelete, ts.URL("/comments/"+first.ID), nil, otherTokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Not authorized to modify this resource")
	})

	t.Run("owner update", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPut, ts.URL("/comments/"+first.ID), map[string]string{"postId": postA, "message": "edited"}, ownerTokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var updated commentBody
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, "edited", updated.Message)
	})

	t.Run("owner delete", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodDelete, ts.URL("/comments/"+first.ID), nil, ownerTokens.AccessToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusOK, "Comment deleted successfully")

		missing := testutil.Do(t, http.MethodDelete, ts.URL("/comments/"+first.ID), nil, ownerTokens.AccessToken)
		defer missing.Body.Close()
		testutil.AssertErrorResponse(t, missing, http.StatusNotFound, "Comment not found")
	})
}
