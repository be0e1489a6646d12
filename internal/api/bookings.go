package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// BookingStatus enumerates the lifecycle states of a visit booking
type BookingStatus int

const (
	BookingStatusBooked      BookingStatus = 1
	BookingStatusCancelled   BookingStatus = 2
	BookingStatusRescheduled BookingStatus = 3
	BookingStatusVerified    BookingStatus = 4
	BookingStatusExpired     BookingStatus = 5
)

func (s BookingStatus) String() string {
	switch s {
	case BookingStatusBooked:
		return "booked"
	case BookingStatusCancelled:
		return "cancelled"
	case BookingStatusRescheduled:
		return "rescheduled"
	case BookingStatusVerified:
		return "verified"
	case BookingStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Booking represents one visit booking
type Booking struct {
	ID           int64         `json:"id"`
	VisitDate    string        `json:"visitDate"`
	TicketCode   string        `json:"ticketCode"`
	Status       BookingStatus `json:"status"`
	CancelReason string        `json:"cancelReason"`
	VerifyTime   string        `json:"verifyTime"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// CreateBookingRequest books a visit day (yyyy-MM-dd)
type CreateBookingRequest struct {
	VisitDate string `json:"visitDate" validate:"required,datetime=2006-01-02"`
}

// RescheduleBookingRequest moves a booking to a new visit day
type RescheduleBookingRequest struct {
	BookingID    int64  `json:"bookingId" validate:"required"`
	NewVisitDate string `json:"newVisitDate" validate:"required,datetime=2006-01-02"`
}

// CancelBookingRequest cancels a booking, optionally with a reason
type CancelBookingRequest struct {
	BookingID    int64  `json:"bookingId" validate:"required"`
	CancelReason string `json:"cancelReason,omitempty" validate:"omitempty,max=200"`
}

// BookingQuery is the paged booking listing filter
type BookingQuery struct {
	Page   int
	Size   int
	Status BookingStatus // optional, zero means all
}

func (q BookingQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Status != 0 {
		v.Set("status", strconv.Itoa(int(q.Status)))
	}
	return v
}

// CreateBooking books a visit and returns the booking with its ticket code
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var booking Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings/create", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// RescheduleBooking moves an existing booking to a new date
func (c *Client) RescheduleBooking(ctx context.Context, req RescheduleBookingRequest) (*Booking, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var booking Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings/reschedule", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels an existing booking
func (c *Client) CancelBooking(ctx context.Context, req CancelBookingRequest) (bool, error) {
	if err := c.validateRequest(req); err != nil {
		return false, err
	}

	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/bookings/cancel", nil, req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// MyBookings returns the caller's paged booking list
func (c *Client) MyBookings(ctx context.Context, query BookingQuery) (*Page[Booking], error) {
	var page Page[Booking]
	if err := c.do(ctx, http.MethodGet, "/api/bookings/my", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// BookingDetail returns one booking by ID
func (c *Client) BookingDetail(ctx context.Context, id int64) (*Booking, error) {
	v := url.Values{}
	v.Set("id", strconv.FormatInt(id, 10))

	var booking Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/detail", v, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
