package domain

import "errors"

var (
	// ErrSubscriptionFailed is returned when subscription to contract logs fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrUnknownContract is returned when an event comes from an address that is not configured
	ErrUnknownContract = errors.New("unknown contract")

	// ErrUnknownEvent is returned when a contract emits an event that has no handler
	ErrUnknownEvent = errors.New("unknown event")

	// ErrInvalidParams is returned when event params cannot be decoded into the expected shape
	ErrInvalidParams = errors.New("invalid event params")

	// ErrContentNotFound is returned when no gateway could serve a content id
	ErrContentNotFound = errors.New("content not found")

	// ErrUnsupportedShape is returned when a content job names an unknown metadata shape
	ErrUnsupportedShape = errors.New("unsupported metadata shape")
)
