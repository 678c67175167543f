// README: Admin handlers (all bookings, driver pool).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi/internal/http/middleware"
	"taxi/internal/modules/dispatch"
)

type AdminHandler struct {
	bookings BookingService
	drivers  DriverService
}

func NewAdminHandler(bookings BookingService, drivers DriverService) *AdminHandler {
	return &AdminHandler{bookings: bookings, drivers: drivers}
}

type driverResp struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
	Status  string `json:"status"`
}

func (h *AdminHandler) Bookings(c *gin.Context) {
	list, err := h.bookings.AllBookings(c.Request.Context(), middleware.CallerSession(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": toBookingList(list)})
}

// Drivers lists the pool filtered by ?status=, Available by default.
func (h *AdminHandler) Drivers(c *gin.Context) {
	status := dispatch.Status(c.DefaultQuery("status", string(dispatch.StatusAvailable)))
	list, err := h.drivers.Drivers(c.Request.Context(), middleware.CallerSession(c), status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]driverResp, 0, len(list))
	for _, d := range list {
		out = append(out, driverResp{ID: d.ID, Name: d.Name, Vehicle: d.Vehicle, Status: string(d.Status)})
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": out})
}
