package metrics

import "strings"

type encodedEvent struct {
	kind Kind
	text string
}

type delivery interface {
	record(sink Sink, source string, ev encodedEvent) error
	emit(sink Sink, source string) error
	reset()
	pending() int
}

func write(sink Sink, l string, kinds []Kind) error {
	if es, ok := sink.(EventSink); ok {
		return es.WriteEvents(l, kinds)
	}
	return sink.WriteLine(l)
}

type immediateDelivery struct{}

func (immediateDelivery) record(sink Sink, source string, ev encodedEvent) error {
	return write(sink, line(source, ev.text), []Kind{ev.kind})
}

func (immediateDelivery) emit(Sink, string) error { return nil }
func (immediateDelivery) reset() {}
func (immediateDelivery) pending() int { return 0 }

type groupingDelivery struct {
	events []encodedEvent
}

func (g *groupingDelivery) record(_ Sink, _ string, ev encodedEvent) error {
	g.events = append(g.events, ev)
	return nil
}

// emit clears the buffer before writing so a failing sink cannot make the
// group grow across scopes.
func (g *groupingDelivery) emit(sink Sink, source string) error {
	if len(g.events) == 0 {
		return nil
	}

	texts := make([]string, len(g.events))
	kinds := make([]Kind, len(g.events))
	for i, ev := range g.events {
		texts[i] = ev.text
		kinds[i] = ev.kind
	}
	joined := line(source, strings.Join(texts, " "))
	g.reset()
	return write(sink, joined, kinds)
}

func (g *groupingDelivery) reset() {
	g.events = nil
}

func (g *groupingDelivery) pending() int {
	return len(g.events)
}

func newDelivery(mode Mode) delivery {
	if mode == Grouping {
		return &groupingDelivery{}
	}
	return immediateDelivery{}
}
