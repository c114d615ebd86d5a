package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueddit/internal/models"
)

func TestCreateComment(t *testing.T) {
	app, _ := newTestApp(t, models.OrphanDrop)
	userID, token := registerUser(t, app, "alice")
	postID := createPost(t, app, userID, token, "a post")

	resp, body := postJSON(t, app, "/api/comments", map[string]any{
		"token":   token,
		"post_id": postID,
		"user_id": userID,
		"content": "first!",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, "Comment created successfully.", body["message"])
	assert.NotZero(t, body["comment_id"])
	assert.Equal(t, float64(postID), body["post_id"])
	assert.Equal(t, float64(userID), body["user_id"])
	assert.Equal(t, "first!", body["content"])
	assert.Nil(t, body["parent_comment_id"])
}

func TestCreateReply(t *testing.T) {
	app, _ := newTestApp(t, models.OrphanDrop)
	userID, token := registerUser(t, app, "alice")
	postID := createPost(t, app, userID, token, "a post")
	rootID := createComment(t, app, userID, token, postID, nil, "root")

	resp, body := postJSON(t, app, "/api/comments", map[string]any{
		"token":             token,
		"post_id":           postID,
		"user_id":           userID,
		"content":           "a reply",
		"parent_comment_id": rootID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(rootID), body["parent_comment_id"])
}

func TestCreateCommentRejections(t *testing.T) {
	app, _ := newTestApp(t, models.OrphanDrop)
	userID, token := registerUser(t, app, "alice")
	postID := createPost(t, app, userID, token, "a post")

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			"missing content",
			map[string]any{"token": token, "post_id": postID, "user_id": userID},
			fiber.StatusBadRequest,
		},
		{
			"bad token",
			map[string]any{"token": "ffffffffffffffffffffffffffffffff", "post_id": postID, "user_id": userID, "content": "x"},
			fiber.StatusForbidden,
		},
		{
			"unknown post",
			map[string]any{"token": token, "post_id": 9999, "user_id": userID, "content": "x"},
			fiber.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := postJSON(t, app, "/api/comments", tt.payload)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestCreateCommentRejectPolicy(t *testing.T) {
	app, _ := newTestApp(t, models.OrphanReject)
	userID, token := registerUser(t, app, "alice")
	postID := createPost(t, app, userID, token, "a post")
	otherID := createPost(t, app, userID, token, "another post")
	rootID := createComment(t, app, userID, token, postID, nil, "root")

	// Parent in the same post is fine.
	resp, _ := postJSON(t, app, "/api/comments", map[string]any{
		"token": token, "post_id": postID, "user_id": userID,
		"content": "ok", "parent_comment_id": rootID,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Parent from a different post is refused.
	resp, _ = postJSON(t, app, "/api/comments", map[string]any{
		"token": token, "post_id": otherID, "user_id": userID,
		"content": "cross-post reply", "parent_comment_id": rootID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Nonexistent parent is refused.
	resp, _ = postJSON(t, app, "/api/comments", map[string]any{
		"token": token, "post_id": postID, "user_id": userID,
		"content": "reply to nothing", "parent_comment_id": 9999,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDropPolicyAcceptsDanglingParent(t *testing.T) {
	app, _ := newTestApp(t, models.OrphanDrop)
	userID, token := registerUser(t, app, "alice")
	postID := createPost(t, app, userID, token, "a post")

	// Under drop the write is accepted; the orphan just never shows up
	// in the assembled view.
	resp, _ := postJSON(t, app, "/api/comments", map[string]any{
		"token": token, "post_id": postID, "user_id": userID,
		"content": "orphan", "parent_comment_id": 9999,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	_, body := getJSON(t, app, fmt.Sprintf("/api/post/%d", postID))
	entry := body[fmt.Sprintf("%d", postID)].(map[string]any)
	assert.Empty(t, entry["comments"])
}
