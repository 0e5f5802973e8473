package core

// IDGenerator abstracts id generation so tests can produce deterministic ids
type IDGenerator interface {
	// NewID returns a fresh opaque identifier
	NewID() string
}
