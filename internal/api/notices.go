package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// NoticeCategory classifies a notice
type NoticeCategory int

const (
	NoticeCategoryBooking      NoticeCategory = 1
	NoticeCategoryAnnouncement NoticeCategory = 2
	NoticeCategoryActivity     NoticeCategory = 3
	NoticeCategoryLecture      NoticeCategory = 4
	NoticeCategorySystem       NoticeCategory = 5
)

func (c NoticeCategory) String() string {
	switch c {
	case NoticeCategoryBooking:
		return "booking"
	case NoticeCategoryAnnouncement:
		return "announcement"
	case NoticeCategoryActivity:
		return "activity"
	case NoticeCategoryLecture:
		return "lecture"
	case NoticeCategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// ReadFlag marks a notice read or unread
type ReadFlag int

const (
	ReadFlagUnread ReadFlag = 0
	ReadFlagRead   ReadFlag = 1
)

// Notice is one notice delivered to the current user
type Notice struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	NoticeID  int64          `json:"noticeId"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Category  NoticeCategory `json:"category"`
	ReadFlag  ReadFlag       `json:"readFlag"`
	CreatedAt string         `json:"createdAt"`
	ReadTime  string         `json:"readTime"`
}

// NoticeQuery is the paged notice listing filter. Category and ReadFlag are
// optional; nil means unfiltered.
type NoticeQuery struct {
	Page     int
	Size     int
	Category *NoticeCategory
	ReadFlag *ReadFlag
}

func (q NoticeQuery) values() url.Values {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.Size
	if size <= 0 {
		size = 10
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	if q.Category != nil {
		v.Set("category", strconv.Itoa(int(*q.Category)))
	}
	if q.ReadFlag != nil {
		v.Set("readFlag", strconv.Itoa(int(*q.ReadFlag)))
	}
	return v
}

// MyNotices returns the caller's paged notice list
func (c *Client) MyNotices(ctx context.Context, query NoticeQuery) (*Page[Notice], error) {
	var page Page[Notice]
	if err := c.do(ctx, http.MethodGet, "/api/notice/my", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NoticeDetail returns one notice by ID
func (c *Client) NoticeDetail(ctx context.Context, id int64) (*Notice, error) {
	v := url.Values{}
	v.Set("id", strconv.FormatInt(id, 10))

	var notice Notice
	if err := c.do(ctx, http.MethodGet, "/api/notice/detail", v, nil, &notice); err != nil {
		return nil, err
	}
	return &notice, nil
}

// MarkNoticeRead marks one notice as read
func (c *Client) MarkNoticeRead(ctx context.Context, id int64) (bool, error) {
	var ok bool
	path := fmt.Sprintf("/api/notice/%d/read", id)
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

type batchReadRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// BatchMarkRead marks several notices as read in one call
func (c *Client) BatchMarkRead(ctx context.Context, ids []int64) (bool, error) {
	req := batchReadRequest{IDs: ids}
	if err := c.validateRequest(req); err != nil {
		return false, err
	}

	var ok bool
	if err := c.do(ctx, http.MethodPut, "/api/notice/batch-read", nil, req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// MarkAllRead marks every notice of the caller as read
func (c *Client) MarkAllRead(ctx context.Context) (bool, error) {
	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/notice/read-all", nil, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// DeleteNotice removes one notice from the caller's inbox
func (c *Client) DeleteNotice(ctx context.Context, id int64) (bool, error) {
	var ok bool
	path := fmt.Sprintf("/api/notice/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
