package core

import "pkt.systems/pslog"

// ServiceDeps captures optional dependencies for the core service.
type ServiceDeps struct {
	Dispatcher *Dispatcher
	EventSink  EventSink
	Logger     pslog.Logger
	// NewEventID overrides event id generation. Nil means random UUIDs.
	NewEventID func() string
	// Edits overrides how document mutations are folded in. Nil means
	// last-write-wins replacement.
	Edits EditApplier
}
