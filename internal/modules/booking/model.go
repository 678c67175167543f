// README: Booking record, the receipt returned to the rider, and display formatting.
package booking

import (
	"fmt"
	"time"

	"taxi/internal/types"
)

// TimestampLayout is how booking times are stored and shown (local time, seconds).
const TimestampLayout = "2006-01-02 15:04:05"

// Booking is immutable once stored. Driver holds the driver's name at booking
// time, or dispatch.NoDriverAvailable.
type Booking struct {
	ID        int64
	Username  string
	Name      string
	Phone     string
	Email     string
	Pickup    string
	Drop      string
	Fare      types.Money
	CreatedAt time.Time
	Driver    string
}

type Request struct {
	Name   string
	Phone  string
	Email  string
	Pickup string
	Drop   string
}

type Receipt struct {
	BookingID  int64
	Fare       types.Money
	Driver     string
	DistanceKm float64
	CreatedAt  time.Time
	MapURL     string
}

// Display renders one ride-history line.
func (b Booking) Display() string {
	return fmt.Sprintf("From: %s, To: %s, Fare: %s, Time: %s, Driver: %s",
		b.Pickup, b.Drop, b.Fare, b.CreatedAt.Format(TimestampLayout), b.Driver)
}

// Display renders the confirmation shown after booking.
func (r Receipt) Display() string {
	return fmt.Sprintf("Ride Booked! Fare: %s\nDriver: %s", r.Fare, r.Driver)
}
