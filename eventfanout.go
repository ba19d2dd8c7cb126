package codetribe

import (
	"pkt.systems/codetribe/core"
	"pkt.systems/codetribe/schema"
)

type eventFanout struct {
	sinks []core.EventSink
}

func (f eventFanout) OnPresence(event schema.PresenceEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnPresence(event)
	}
}

func (f eventFanout) OnDocument(event schema.DocumentEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnDocument(event)
	}
}

func (f eventFanout) OnSchedule(event schema.ScheduleEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnSchedule(event)
	}
}

func (f eventFanout) OnConsole(event schema.ConsoleEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnConsole(event)
	}
}

func (f eventFanout) OnRun(event schema.RunEvent) {
	for _, sink := range f.sinks {
		if sink == nil {
			continue
		}
		sink.OnRun(event)
	}
}
