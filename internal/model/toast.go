package model

// ToastKind classifies a transient operator notification.
type ToastKind string

const (
	ToastInfo     ToastKind = "info"
	ToastSuccess  ToastKind = "success"
	ToastDeleted  ToastKind = "deleted"
	ToastRestored ToastKind = "restored"
	ToastError    ToastKind = "error"
)

// Toast is a single transient message. Only one toast is visible at a time;
// a new one replaces whatever is currently shown.
type Toast struct {
	ID   string    `json:"id"`
	Kind ToastKind `json:"kind"`
	Text string    `json:"text"`
}
