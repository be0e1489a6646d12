package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// DashboardStats is the admin landing-page counter set
type DashboardStats struct {
	TodayBookedCount    int64 `json:"todayBookedCount"`
	TodayTotalQuota     int64 `json:"todayTotalQuota"`
	TotalCommentCount   int64 `json:"totalCommentCount"`
	PendingCommentCount int64 `json:"pendingCommentCount"`
	TotalUserCount      int64 `json:"totalUserCount"`
	MonthlyBookingCount int64 `json:"monthlyBookingCount"`
	TodayVerifiedCount  int64 `json:"todayVerifiedCount"`
	TodayCancelledCount int64 `json:"todayCancelledCount"`
}

// AdminUser is the full account record as administrators see it
type AdminUser struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	PasswordHash   string `json:"passwordHash"`
	AvatarURL      string `json:"avatarUrl"`
	Phone          string `json:"phone"`
	QQOpenID       string `json:"qqOpenid"`
	WechatOpenID   string `json:"wechatOpenid"`
	RealName       string `json:"realName"`
	IDCard         string `json:"idCard"`
	AllowPush      int    `json:"allowPush"`
	AllowFootprint int    `json:"allowFootprint"`
	Status         int    `json:"status"`
	Role           string `json:"role"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// UserQuery is the paged user listing filter
type UserQuery struct {
	Page    int
	Size    int
	Keyword string
	Status  *int
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Status != nil {
		v.Set("status", strconv.Itoa(*q.Status))
	}
	return v
}

// DashboardStats returns the admin dashboard counters
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminUsers returns the paged account list
func (c *Client) AdminUsers(ctx context.Context, query UserQuery) (*Page[AdminUser], error) {
	var page Page[AdminUser]
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminUserDetail returns one account by ID
func (c *Client) AdminUserDetail(ctx context.Context, id int64) (*AdminUser, error) {
	var user AdminUser
	path := fmt.Sprintf("/api/admin/users/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// BanUser disables an account
func (c *Client) BanUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/users/%d/ban", id)
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}

// UnbanUser re-enables an account
func (c *Client) UnbanUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/users/%d/unban", id)
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}

// ExportUsers downloads the account list as a spreadsheet blob. Blob
// responses bypass the envelope and come back verbatim.
func (c *Client) ExportUsers(ctx context.Context, keyword string, status *int) ([]byte, error) {
	v := url.Values{}
	if keyword != "" {
		v.Set("keyword", keyword)
	}
	if status != nil {
		v.Set("status", strconv.Itoa(*status))
	}
	return c.getBlob(ctx, "/api/admin/users/export", v)
}

// AdminItemQuery is the admin-side paged exhibit listing filter
type AdminItemQuery struct {
	Current   int
	Size      int
	Keyword   string
	MediaKind MediaKind
}

func (q AdminItemQuery) values() url.Values {
	v := url.Values{}
	v.Set("current", strconv.Itoa(q.Current))
	v.Set("size", strconv.Itoa(q.Size))
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.MediaKind != "" {
		v.Set("mediaKind", string(q.MediaKind))
	}
	return v
}

// AddItemRequest creates an exhibit
type AddItemRequest struct {
	Title       string    `json:"title" validate:"required,max=128"`
	Description string    `json:"description,omitempty"`
	MediaKind   MediaKind `json:"mediaKind" validate:"required,oneof=IMAGE VIDEO"`
	MediaURL    string    `json:"mediaUrl" validate:"required,url"`
	CoverURL    string    `json:"coverUrl,omitempty" validate:"omitempty,url"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
}

// UpdateItemRequest updates an exhibit; zero fields are left untouched
type UpdateItemRequest struct {
	ID          int64  `json:"id" validate:"required"`
	Title       string `json:"title,omitempty" validate:"omitempty,max=128"`
	Description string `json:"description,omitempty"`
	MediaURL    string `json:"mediaUrl,omitempty" validate:"omitempty,url"`
	CoverURL    string `json:"coverUrl,omitempty" validate:"omitempty,url"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
}

// AdminItems returns the admin-side paged exhibit list
func (c *Client) AdminItems(ctx context.Context, query AdminItemQuery) (*Page[ExhibitItem], error) {
	var page Page[ExhibitItem]
	if err := c.do(ctx, http.MethodGet, "/api/admin/items", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddItem creates a new exhibit and returns its ID
func (c *Client) AddItem(ctx context.Context, req AddItemRequest) (int64, error) {
	if err := c.validateRequest(req); err != nil {
		return 0, err
	}

	var id int64
	if err := c.do(ctx, http.MethodPost, "/api/admin/items", nil, req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateItem updates an exhibit
func (c *Client) UpdateItem(ctx context.Context, req UpdateItemRequest) error {
	if err := c.validateRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/admin/items", nil, req, nil)
}

// PublishItem puts an exhibit on display
func (c *Client) PublishItem(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/items/%d/up", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}

// UnpublishItem takes an exhibit off display
func (c *Client) UnpublishItem(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/items/%d/down", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}

// RestoreItem restores a deleted exhibit
func (c *Client) RestoreItem(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/items/%d/restore", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}

// DeleteItem removes an exhibit
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/items/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// AdminComment is a comment as moderators see it
type AdminComment struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"itemId"`
	ItemTitle string `json:"itemTitle"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	Status    int    `json:"status"` // 0 hidden, 1 visible
	CreatedAt string `json:"createdAt"`
}

// AdminCommentQuery is the moderation listing filter
type AdminCommentQuery struct {
	Current   int
	Size      int
	ItemID    *int64
	ItemTitle string
	Status    *int
}

func (q AdminCommentQuery) values() url.Values {
	v := url.Values{}
	v.Set("current", strconv.Itoa(q.Current))
	v.Set("size", strconv.Itoa(q.Size))
	if q.ItemID != nil {
		v.Set("itemId", strconv.FormatInt(*q.ItemID, 10))
	}
	if q.ItemTitle != "" {
		v.Set("itemTitle", q.ItemTitle)
	}
	if q.Status != nil {
		v.Set("status", strconv.Itoa(*q.Status))
	}
	return v
}

// AdminComments returns the paged moderation comment list
func (c *Client) AdminComments(ctx context.Context, query AdminCommentQuery) (*Page[AdminComment], error) {
	var page Page[AdminComment]
	if err := c.do(ctx, http.MethodGet, "/api/admin/comments", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteAdminComment removes any user's comment
func (c *Client) DeleteAdminComment(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/comments/delete/%d", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// HideComment hides a comment from the public list
func (c *Client) HideComment(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/comments/%d/hide", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// ShowComment makes a hidden comment visible again
func (c *Client) ShowComment(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/comments/%d/show", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// AdminBookingQuery filters the all-bookings query
type AdminBookingQuery struct {
	Page       int           `json:"page,omitempty"`
	Size       int           `json:"size,omitempty"`
	Status     BookingStatus `json:"status,omitempty"`
	VisitDate  string        `json:"visitDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TicketCode string        `json:"ticketCode,omitempty"`
}

// VerifyBookingRequest checks a visitor in by ticket code
type VerifyBookingRequest struct {
	TicketCode string `json:"ticketCode" validate:"required"`
}

// AdminBookings returns every booking matching the query
func (c *Client) AdminBookings(ctx context.Context, query AdminBookingQuery) (*Page[Booking], error) {
	if err := c.validateRequest(query); err != nil {
		return nil, err
	}

	var page Page[Booking]
	if err := c.do(ctx, http.MethodPost, "/api/admin/bookings/query", nil, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// VerifyBooking marks a booking verified at the entrance
func (c *Client) VerifyBooking(ctx context.Context, req VerifyBookingRequest) (*Booking, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var booking Booking
	if err := c.do(ctx, http.MethodPost, "/api/admin/bookings/verify", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// OSSUploadResult describes an uploaded media object
type OSSUploadResult struct {
	URL          string    `json:"url"`
	MediaKind    MediaKind `json:"mediaKind"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
}

// UploadToOSS uploads one media file and returns its public location
func (c *Client) UploadToOSS(ctx context.Context, fileName string, content io.Reader) (*OSSUploadResult, error) {
	var result OSSUploadResult
	if err := c.doMultipart(ctx, "/api/admin/oss/upload", "file", fileName, content, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
