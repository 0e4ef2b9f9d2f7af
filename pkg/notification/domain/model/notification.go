package model

import (
	"time"
)

type NotificationKind int

const (
	ItemAdded NotificationKind = iota
	QuantityChanged
	ItemRemoved
	CartEmptied
)

// Notification is a short user facing message about a cart change.
type Notification struct {
	Kind      NotificationKind
	ItemID    string
	Title     string
	Body      string
	CreatedAt time.Time
}

type NotificationSender interface {
	Send(notification Notification) error
}
