package domain

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription ties one browser/device push registration to a recipient
// identifier. Endpoint is unique; re-subscribing the same endpoint under a
// different identity reassigns ownership. Rows are disabled rather than
// deleted so a re-registration race cannot resurrect stale key material.
type PushSubscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	IsEnabled bool      `json:"is_enabled" db:"is_enabled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type SubscribeInput struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type SelectorMode int

const (
	// SelectNone matches no subscriptions; dispatching to it is a no-op.
	SelectNone SelectorMode = iota
	// SelectAll matches every enabled subscription regardless of owner.
	SelectAll
	// SelectRecipients matches enabled subscriptions owned by the listed
	// recipient identifiers.
	SelectRecipients
	// SelectPrefix matches enabled subscriptions whose owner identifier
	// starts with Prefix.
	SelectPrefix
)

// SubscriptionSelector is the bulk form of an audience: the resolved "who"
// a dispatch fans out to.
type SubscriptionSelector struct {
	Mode       SelectorMode
	Recipients []string
	Prefix     string
}

func SelectNoSubscriptions() SubscriptionSelector {
	return SubscriptionSelector{Mode: SelectNone}
}

func SelectAllSubscriptions() SubscriptionSelector {
	return SubscriptionSelector{Mode: SelectAll}
}

func SelectByRecipients(ids []string) SubscriptionSelector {
	if len(ids) == 0 {
		return SelectNoSubscriptions()
	}
	return SubscriptionSelector{Mode: SelectRecipients, Recipients: ids}
}

func SelectByPrefix(prefix string) SubscriptionSelector {
	return SubscriptionSelector{Mode: SelectPrefix, Prefix: prefix}
}

// PushMessage is the JSON wire shape delivered to the client's notification
// handler.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// DispatchReport summarizes one fan-out. It exists for logging only; callers
// never branch on it and it is never surfaced to the request that triggered
// the dispatch.
type DispatchReport struct {
	Attempted int
	Delivered int
	Failed    int
	Disabled  int
	Aborted   bool
}
