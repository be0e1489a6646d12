package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// QuotaInfo is the booking capacity of one visit day
type QuotaInfo struct {
	ID             int64  `json:"id"`
	VisitDate      string `json:"visitDate"`
	Capacity       int    `json:"capacity"`
	ReservedCount  int    `json:"reservedCount"`
	RemainingCount int    `json:"remainingCount"`
	Status         int    `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type quotaQueryRequest struct {
	VisitDate string `json:"visitDate" validate:"required,datetime=2006-01-02"`
}

// QuotaUpdateRequest sets the capacity of one visit day (admin)
type QuotaUpdateRequest struct {
	VisitDate string `json:"visitDate" validate:"required,datetime=2006-01-02"`
	Capacity  int    `json:"capacity" validate:"min=0"`
}

// QuotaInfo returns the capacity of the given visit day
func (c *Client) QuotaInfo(ctx context.Context, visitDate string) (*QuotaInfo, error) {
	req := quotaQueryRequest{VisitDate: visitDate}
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var info QuotaInfo
	if err := c.do(ctx, http.MethodPost, "/api/quota/info", nil, req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateQuota overrides the capacity of one visit day
func (c *Client) UpdateQuota(ctx context.Context, req QuotaUpdateRequest) (bool, error) {
	if err := c.validateRequest(req); err != nil {
		return false, err
	}

	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/quota/update", nil, req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// CreateFutureQuota pre-creates quotas for the next N days
func (c *Client) CreateFutureQuota(ctx context.Context, days int) (string, error) {
	v := url.Values{}
	v.Set("days", strconv.Itoa(days))

	var result string
	if err := c.do(ctx, http.MethodPost, "/api/quota/create", v, nil, &result); err != nil {
		return "", err
	}
	return result, nil
}
