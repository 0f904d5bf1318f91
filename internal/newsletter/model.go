package newsletter

import "time"

// Subscriber is one newsletter recipient. Token is an opaque uuid used in
// unsubscribe links so addresses never appear in URLs.
type Subscriber struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Token          string     `json:"-"`
	Active         bool       `json:"active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// SubscribeResult reports what a subscribe call did. AlreadySubscribed is
// true only when the address was active before the call.
type SubscribeResult struct {
	AlreadySubscribed bool   `json:"alreadySubscribed"`
	Message           string `json:"message"`
}
