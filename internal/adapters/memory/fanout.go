package memory

import "github.com/Nolimiter/nOHACK/internal/ports/secondary"

// FanoutSink publishes every event to each wrapped sink in order.
type FanoutSink struct {
	sinks []secondary.EventSink
}

// NewFanoutSink composes sinks into one. Nil entries are skipped.
func NewFanoutSink(sinks ...secondary.EventSink) *FanoutSink {
	f := &FanoutSink{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *FanoutSink) Publish(userID, event string, payload any) {
	for _, s := range f.sinks {
		s.Publish(userID, event, payload)
	}
}

// Ensure FanoutSink implements the interface
var _ secondary.EventSink = (*FanoutSink)(nil)
