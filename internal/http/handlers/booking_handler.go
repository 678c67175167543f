// README: Booking handlers (fare estimate, book ride, history, PDF receipt).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxi/internal/http/middleware"
	"taxi/internal/modules/booking"
	"taxi/internal/modules/pricing"
)

type BookingHandler struct {
	bookings BookingService
}

func NewBookingHandler(bookings BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookRideReq struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Pickup string `json:"pickup"`
	Drop   string `json:"drop"`
}

type estimateResp struct {
	DistanceKm float64 `json:"distance_km"`
	Fare       float64 `json:"fare"`
	Currency   string  `json:"currency"`
	Display    string  `json:"display"`
}

type receiptResp struct {
	BookingID  int64   `json:"booking_id"`
	Fare       float64 `json:"fare"`
	Currency   string  `json:"currency"`
	Driver     string  `json:"driver"`
	DistanceKm float64 `json:"distance_km"`
	Timestamp  string  `json:"timestamp"`
	MapURL     string  `json:"map_url"`
	Display    string  `json:"display"`
}

type bookingResp struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Pickup    string  `json:"pickup"`
	Drop      string  `json:"drop"`
	Fare      float64 `json:"fare"`
	Currency  string  `json:"currency"`
	Timestamp string  `json:"timestamp"`
	Driver    string  `json:"driver"`
	Display   string  `json:"display"`
}

func toEstimateResp(e pricing.Estimate) estimateResp {
	return estimateResp{
		DistanceKm: e.DistanceKm,
		Fare:       e.Fare.Float(),
		Currency:   e.Fare.Currency,
		Display:    e.Display(),
	}
}

func toBookingResp(b booking.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		Username:  b.Username,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Pickup:    b.Pickup,
		Drop:      b.Drop,
		Fare:      b.Fare.Float(),
		Currency:  b.Fare.Currency,
		Timestamp: b.CreatedAt.Format(booking.TimestampLayout),
		Driver:    b.Driver,
		Display:   b.Display(),
	}
}

func toBookingList(list []booking.Booking) []bookingResp {
	out := make([]bookingResp, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResp(b))
	}
	return out
}

func (h *BookingHandler) Estimate(c *gin.Context) {
	est, err := h.bookings.Quote(c.Query("pickup"), c.Query("drop"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toEstimateResp(est))
}

func (h *BookingHandler) Book(c *gin.Context) {
	var req bookRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.bookings.BookRide(c.Request.Context(), middleware.CallerSession(c), booking.Request{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Pickup: req.Pickup,
		Drop:   req.Drop,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, receiptResp{
		BookingID:  r.BookingID,
		Fare:       r.Fare.Float(),
		Currency:   r.Fare.Currency,
		Driver:     r.Driver,
		DistanceKm: r.DistanceKm,
		Timestamp:  r.CreatedAt.Format(booking.TimestampLayout),
		MapURL:     r.MapURL,
		Display:    r.Display(),
	})
}

func (h *BookingHandler) History(c *gin.Context) {
	list, err := h.bookings.History(c.Request.Context(), middleware.CallerSession(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": toBookingList(list)})
}

func (h *BookingHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	pdf, err := h.bookings.ReceiptPDF(c.Request.Context(), middleware.CallerSession(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "inline; filename=receipt-"+strconv.FormatInt(id, 10)+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
