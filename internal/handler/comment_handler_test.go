package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/service"
)

type commentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

func submitComment(t *testing.T, srv *testServer, postID, content string) domain.Comment {
	t.Helper()
	w := srv.do(t, http.MethodPost, "/api/comments", map[string]string{
		"author":  "Reader",
		"email":   "reader@example.com",
		"content": content,
		"postId":  postID,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Comment domain.Comment `json:"comment"`
		Message string         `json:"message"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Comment submitted successfully and is pending moderation", resp.Message)
	return resp.Comment
}

func TestCommentModeration(t *testing.T) {
	srv := newTestServer(t, nil)
	editor := srv.token(t, auth.RoleEditor)

	first := submitComment(t, srv, "1", "Great overview of the app router")
	second := submitComment(t, srv, "1", "Buy cheap watches")
	assert.Equal(t, domain.CommentStatusPending, first.Status)
	assert.Equal(t, "Getting Started with Next.js 14 and the App Router", first.PostTitle, "post title is copied from the post")

	var public commentsResponse
	decode(t, srv.do(t, http.MethodGet, "/api/comments?postId=1", nil, ""), &public)
	assert.Empty(t, public.Comments, "pending comments are hidden from readers")

	w := srv.do(t, http.MethodGet, "/api/comments/"+first.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var staff commentsResponse
	decode(t, srv.do(t, http.MethodGet, "/api/comments?postId=1&status=pending", nil, editor), &staff)
	assert.Len(t, staff.Comments, 2)

	w = srv.do(t, http.MethodPost, "/api/comments/bulk", map[string]any{
		"ids":    []string{first.ID, "missing-id"},
		"action": "approve",
	}, editor)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var bulk service.BulkResult
	decode(t, w, &bulk)
	assert.Equal(t, service.BulkResult{Action: "approve", Processed: 1, Missing: []string{"missing-id"}}, bulk)

	w = srv.do(t, http.MethodPut, "/api/comments/"+second.ID, map[string]string{"status": "spam"}, editor)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	decode(t, srv.do(t, http.MethodGet, "/api/comments?postId=1", nil, ""), &public)
	require.Len(t, public.Comments, 1)
	assert.Equal(t, first.ID, public.Comments[0].ID)

	var search commentsResponse
	decode(t, srv.do(t, http.MethodGet, "/api/admin/comments?search=WATCHES&status=spam", nil, editor), &search)
	require.Len(t, search.Comments, 1)
	assert.Equal(t, second.ID, search.Comments[0].ID)

	w = srv.do(t, http.MethodPost, "/api/comments/"+first.ID+"/reply", map[string]string{"content": "Thanks!"}, editor)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reply struct {
		Comment domain.Comment `json:"comment"`
	}
	decode(t, w, &reply)
	assert.Equal(t, "Admin", reply.Comment.Author)
	assert.Equal(t, domain.CommentStatusApproved, reply.Comment.Status)

	w = srv.do(t, http.MethodGet, "/api/comments/"+first.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var parent struct {
		Comment domain.Comment `json:"comment"`
	}
	decode(t, w, &parent)
	require.Len(t, parent.Comment.Replies, 1)
	assert.Equal(t, reply.Comment.ID, parent.Comment.Replies[0].ID)
}

func TestCreateComment_Errors(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/comments", map[string]string{"author": "A"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields: author, email, content, postId"}`, w.Body.String())

	w = srv.do(t, http.MethodPost, "/api/comments", map[string]string{
		"author": "A", "email": "not-an-email", "content": "hi", "postId": "1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var verr struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &verr)
	assert.Equal(t, "Validation failed", verr.Error)
	assert.Contains(t, verr.Fields, "email")

	settings := domain.DefaultSettings()
	settings.Content.EnableComments = false
	w = srv.do(t, http.MethodPut, "/api/admin/settings", settings, srv.token(t, auth.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodPost, "/api/comments", map[string]string{
		"author": "A", "email": "a@example.com", "content": "hi", "postId": "1",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBulkComments_BadRequests(t *testing.T) {
	srv := newTestServer(t, nil)
	editor := srv.token(t, auth.RoleEditor)

	w := srv.do(t, http.MethodPost, "/api/comments/bulk", map[string]any{"ids": []string{"1"}, "action": "archive"}, editor)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/comments/bulk", map[string]any{"action": "delete"}, editor)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/comments/bulk", map[string]any{"ids": []string{"1"}, "action": "delete"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateComment_UnpublishedPost(t *testing.T) {
	srv := newTestServer(t, nil)
	admin := srv.token(t, auth.RoleAdmin)

	settings := domain.DefaultSettings()
	settings.Content.ModerateComments = false
	w := srv.do(t, http.MethodPut, "/api/admin/settings", settings, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "Unannounced launch", "excerpt": "e", "content": "c",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var draft postResponse
	decode(t, w, &draft)

	for _, postID := range []string{draft.Post.ID, "missing"} {
		w = srv.do(t, http.MethodPost, "/api/comments", map[string]string{
			"author": "A", "email": "a@example.com", "content": "hi", "postId": postID,
		}, "")
		assert.Equal(t, http.StatusNotFound, w.Code, postID)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
	}

	w = srv.do(t, http.MethodGet, "/api/comments?postId="+draft.Post.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"comments":[]}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "Unannounced launch")
}

func TestPublicComments_OmitEmail(t *testing.T) {
	srv := newTestServer(t, nil)
	editor := srv.token(t, auth.RoleEditor)

	comment := submitComment(t, srv, "2", "Conditional types finally clicked")
	w := srv.do(t, http.MethodPost, "/api/comments/bulk", map[string]any{
		"ids": []string{comment.ID}, "action": "approve",
	}, editor)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = srv.do(t, http.MethodPost, "/api/comments/"+comment.ID+"/reply", map[string]string{"content": "Glad it helped"}, editor)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	public := []string{
		"/api/comments?postId=2",
		"/api/comments/" + comment.ID,
		"/api/blog/posts/mastering-typescript-advanced-types-and-patterns",
	}
	for _, path := range public {
		w := srv.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		body := w.Body.String()
		assert.Contains(t, body, "Conditional types finally clicked", path)
		assert.NotContains(t, body, `"email"`, path)
		assert.NotContains(t, body, "reader@example.com", path)
		assert.NotContains(t, body, "admin@modernblog.com", path)
	}

	w = srv.do(t, http.MethodGet, "/api/comments?postId=2", nil, editor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reader@example.com", "staff see the full record")
}
