package secondary

// Event names pushed to clients over the event sink.
const (
	EventOperationStarted  = "operation:started"
	EventOperationProgress = "operation:progress"
	EventOperationComplete = "operation:complete"
	EventDefenseAlert      = "defense:alert"
)

// Event is a single push notification addressed to one user.
type Event struct {
	Name    string `json:"event"`
	UserID  string `json:"-"`
	Payload any    `json:"payload"`
}

// EventSink delivers push notifications to a connected client, keyed by
// user identity. Publish is fire-and-forget: it must not block the caller
// and delivery is best-effort.
type EventSink interface {
	Publish(userID, event string, payload any)
}
