package core

import "pkt.systems/codetribe/schema"

// EventSink receives session, document, schedule, console, and run
// events from the core service.
type EventSink interface {
	OnPresence(event schema.PresenceEvent)
	OnDocument(event schema.DocumentEvent)
	OnSchedule(event schema.ScheduleEvent)
	OnConsole(event schema.ConsoleEvent)
	OnRun(event schema.RunEvent)
}
