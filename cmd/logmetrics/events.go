package main

import (
	"fmt"
	"strings"

	"github.com/jt828/log-metrics/pkg/metrics"
)

type event struct {
	kind     metrics.Kind
	name     string
	value    string
	hasValue bool
}

// parseEvent reads "<kind>#<name>[=<value>]". Only count may omit the value.
func parseEvent(arg string) (event, error) {
	kind, rest, ok := strings.Cut(arg, "#")
	if !ok {
		return event{}, fmt.Errorf("metric %q: missing '#' after kind", arg)
	}

	ev := event{kind: metrics.Kind(kind)}
	ev.name, ev.value, ev.hasValue = strings.Cut(rest, "=")
	if ev.name == "" {
		return event{}, fmt.Errorf("metric %q: empty name", arg)
	}

	switch ev.kind {
	case metrics.CountKind:
	case metrics.SampleKind, metrics.MeasureKind, metrics.UniqueKind:
		if !ev.hasValue {
			return event{}, fmt.Errorf("metric %q: %s requires a value", arg, kind)
		}
	default:
		return event{}, fmt.Errorf("metric %q: unknown kind %q", arg, kind)
	}
	return ev, nil
}

func parseEvents(args []string) ([]event, error) {
	events := make([]event, 0, len(args))
	for _, arg := range args {
		ev, err := parseEvent(arg)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (ev event) record(e *metrics.Emitter) error {
	switch ev.kind {
	case metrics.CountKind:
		if !ev.hasValue {
			return e.Increment(ev.name)
		}
		return e.IncrementBy(ev.name, ev.value)
	case metrics.SampleKind:
		return e.Sample(ev.name, ev.value)
	case metrics.MeasureKind:
		return e.Measure(ev.name, ev.value)
	default:
		return e.Unique(ev.name, ev.value)
	}
}

// emitAll records events inside one grouping scope, timed by timerName when
// it is set.
func emitAll(e *metrics.Emitter, events []event, timerName string) (err error) {
	defer e.Enter().Exit(&err)

	if timerName != "" {
		t := e.Timer(timerName)
		t.Enter()
		defer t.Exit(&err)
	}

	for _, ev := range events {
		if err := ev.record(e); err != nil {
			return err
		}
	}
	return nil
}
