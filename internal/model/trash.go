package model

// TrashedOrder is a soft-deleted order still inside the 30-day retention
// window. DeletedAt and DaysRemaining are backend-computed; the console never
// mutates them, it only relays them to the shell.
type TrashedOrder struct {
	Order
	DeletedAt     string `json:"deleted_at"`
	DaysRemaining int    `json:"days_remaining"`
}
