// README: Driver record and dispatch status values.
package dispatch

type Status string

const (
	StatusAvailable Status = "Available"
	StatusBusy      Status = "Busy"
)

// NoDriverAvailable is returned in place of a driver name when every driver is busy.
// It is a normal outcome, not an error.
const NoDriverAvailable = "No Driver Available"

type Driver struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Vehicle string `db:"vehicle"`
	Status  Status `db:"status"`
}
