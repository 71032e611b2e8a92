package notify

// Notification event types mirrored by the client.
const (
	TypeNewBooking       = "NEW_BOOKING"
	TypeBookingConfirmed = "BOOKING_CONFIRMED"
	TypeBookingCancelled = "BOOKING_CANCELLED"
	TypeBookingCompleted = "BOOKING_COMPLETED"
	TypeNewReview        = "NEW_REVIEW"
	TypeNewService       = "NEW_SERVICE"
)

// Notification is the single event shape pushed server to client.
type Notification struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Audience keys. A connected client is subscribed to its own user audience
// plus the cohort for its role.
const (
	AudienceProviders  = "providers"
	AudienceHomeowners = "homeowners"
)

func UserAudience(userID string) string { return "user:" + userID }
