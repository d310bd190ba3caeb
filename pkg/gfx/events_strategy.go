package gfx

// EventsConsumerStrategy decides how many queued events are handled before
// the loop checks whether a frame is due.
type EventsConsumerStrategy interface {
	Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int
}

type drainStrategy struct {
	limit int
}

// Only the first poll may block. Later polls return whatever is already
// queued so input never delays a due frame.
func (s drainStrategy) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	count := 0
	for s.limit <= 0 || count < s.limit {
		wait := 0
		if count == 0 {
			wait = timeoutMs
		}
		event, ok := poll(wait)
		if !ok {
			break
		}
		handle(event)
		count++
	}
	return count
}

func DrainAll() EventsConsumerStrategy {
	return drainStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	if max <= 0 {
		max = 1
	}
	return drainStrategy{limit: max}
}
