/*
Package metrics writes counters, samples, measurements and unique-value
events to a line sink as single-line text records:

	count#api.requests=1
	source=web-1 measure#api.db.query.ms=12.40
	source=web-1 count#api.requests=1 sample#api.queue=7 unique#api.user=42

An Emitter in Immediate mode writes one line per event. In Grouping mode it
buffers encoded events and writes them as a single line on Emit or when a
grouping scope ends.

Timers measure elapsed wall-clock time around a function or a scope and
record it as a "<name>.ms" measurement with two decimal digits.

An Emitter is not safe for concurrent use in Grouping mode; give each
goroutine its own.
*/
package metrics
