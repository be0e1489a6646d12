package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// MediaKind is the exhibit media type
type MediaKind string

const (
	MediaKindImage MediaKind = "IMAGE"
	MediaKindVideo MediaKind = "VIDEO"
)

// ExhibitItem represents one exhibit
type ExhibitItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MediaKind   MediaKind `json:"mediaKind"`
	MediaURL    string    `json:"mediaUrl"`
	CoverURL    string    `json:"coverUrl"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	CreatorID   int64     `json:"creatorId"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ItemQuery is the paged exhibit listing filter
type ItemQuery struct {
	Current   int
	Size      int
	MediaKind MediaKind // optional
}

func (q ItemQuery) values() url.Values {
	v := url.Values{}
	v.Set("current", strconv.Itoa(q.Current))
	v.Set("size", strconv.Itoa(q.Size))
	if q.MediaKind != "" {
		v.Set("mediaKind", string(q.MediaKind))
	}
	return v
}

// Items returns the visitor-facing paged exhibit list
func (c *Client) Items(ctx context.Context, query ItemQuery) (*Page[ExhibitItem], error) {
	var page Page[ExhibitItem]
	if err := c.do(ctx, http.MethodGet, "/api/items", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Item returns one exhibit by ID
func (c *Client) Item(ctx context.Context, id int64) (*ExhibitItem, error) {
	var item ExhibitItem
	path := fmt.Sprintf("/api/items/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
