package model

// AuditEntry records one operator write command and its outcome. Read-only
// polling is never audited.
type AuditEntry struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	OccurredAt string `json:"occurred_at"`
	ActorIP    string `json:"actor_ip"`
	Status     string `json:"status"`
	Subject    string `json:"subject,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AuditQuery filters the command log.
type AuditQuery struct {
	Command string
	Status  string
	From    string
	To      string
	Page    int
	Limit   int
}
