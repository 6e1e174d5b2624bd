package entity

import "time"

// PublisherSubscription records a reader's interest in a publisher.
// At most one row exists per (reader, publisher) pair.
type PublisherSubscription struct {
	ID           int64
	ReaderID     int64
	PublisherID  int64
	SubscribedAt time.Time
}

// JournalistSubscription records a reader's interest in an individual
// journalist. At most one row exists per (reader, journalist) pair.
type JournalistSubscription struct {
	ID           int64
	ReaderID     int64
	JournalistID int64
	SubscribedAt time.Time
}
