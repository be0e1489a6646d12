package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Comment is one exhibit comment as the viewer sees it. Liked reports
// whether the current user has liked it (0/1), LikeCount the total.
type Comment struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"itemId"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	AvatarURL string `json:"avatarURL"`
	Liked     int    `json:"liked"`
	LikeCount int    `json:"likeCount"`
	CreatedAt string `json:"createdAt"`
}

// AddCommentRequest represents a new comment
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// CommentQuery is the paged comment listing filter
type CommentQuery struct {
	Current int
	Size    int
}

// Comments returns the paged comment list of one exhibit
func (c *Client) Comments(ctx context.Context, itemID int64, query CommentQuery) (*Page[Comment], error) {
	v := url.Values{}
	v.Set("current", strconv.Itoa(query.Current))
	v.Set("size", strconv.Itoa(query.Size))

	var page Page[Comment]
	path := fmt.Sprintf("/api/items/%d/comments/list", itemID)
	if err := c.do(ctx, http.MethodGet, path, v, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddComment posts a comment on an exhibit and returns the comment ID
func (c *Client) AddComment(ctx context.Context, itemID int64, req AddCommentRequest) (int64, error) {
	if err := c.validateRequest(req); err != nil {
		return 0, err
	}

	var id int64
	path := fmt.Sprintf("/api/items/%d/comments/add", itemID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteComment removes the caller's own comment
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	path := fmt.Sprintf("/api/items/comments/%d", commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// LikeComment likes a comment
func (c *Client) LikeComment(ctx context.Context, commentID int64) (bool, error) {
	v := url.Values{}
	v.Set("commentId", strconv.FormatInt(commentID, 10))

	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/comment-like/like", v, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// UnlikeComment withdraws a like
func (c *Client) UnlikeComment(ctx context.Context, commentID int64) (bool, error) {
	v := url.Values{}
	v.Set("commentId", strconv.FormatInt(commentID, 10))

	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/comment-like/cancel", v, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
