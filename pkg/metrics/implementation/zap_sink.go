package implementation

import (
	"os"
	"time"

	"github.com/jt828/log-metrics/pkg/metrics"
	"go.uber.org/zap/zapcore"
)

type zapSink struct {
	core zapcore.Core
	now  func() time.Time
}

// NewZapSink writes each line as a bare info-level message followed by a
// newline. Write errors are returned to the caller instead of going to
// zap's error output.
func NewZapSink(ws zapcore.WriteSyncer) metrics.Sink {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	return &zapSink{
		core: zapcore.NewCore(enc, ws, zapcore.InfoLevel),
		now:  time.Now,
	}
}

func NewConsoleSink() metrics.Sink {
	return NewZapSink(zapcore.Lock(os.Stdout))
}

func (s *zapSink) WriteLine(line string) error {
	ent := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    s.now(),
		Message: line,
	}
	if !s.core.Enabled(ent.Level) {
		return nil
	}
	return s.core.Write(ent, nil)
}
