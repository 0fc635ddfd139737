package enum

// NotificationStatus tracks the delivery state of a queued push notification
// record. Records are created pending and drained by the notifier worker.
type NotificationStatus string

const (
	NotificationStatusPending      NotificationStatus = "pending"
	NotificationStatusSent         NotificationStatus = "sent"
	NotificationStatusFailed       NotificationStatus = "failed"
	NotificationStatusInvalidToken NotificationStatus = "invalid_token"
)

func (s NotificationStatus) String() string {
	return string(s)
}
