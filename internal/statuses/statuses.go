package statuses

const (
	StatusWaitOpponent = "wait_opponent"
	StatusActive       = "active"
	StatusPaused       = "paused"
	StatusCompleted    = "completed"
)
