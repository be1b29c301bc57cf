package event

type Type string

const (
	TypeOrdersRefreshed Type = "orders.refreshed"
	TypeOrderDeleted    Type = "order.deleted"
	TypeOrderRestored   Type = "order.restored"
	TypeOrderPurged     Type = "order.purged"
	TypeOrderCreated    Type = "order.created"
	TypeScanProcessing  Type = "scan.processing"
	TypeScanCompleted   Type = "scan.completed"
	TypeAutoScanToggled Type = "scan.auto_toggled"
	TypeToastShown      Type = "toast.shown"
	TypeToastCleared    Type = "toast.cleared"
	TypeExportCompleted Type = "export.completed"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
