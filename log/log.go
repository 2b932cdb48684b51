package log

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rotisserie/eris"

	"pkg.world.dev/tablestore/types/component"
)

// Loggable is the part of a table that log helpers need.
type Loggable interface {
	ComponentIDs() []component.TypeID
	Count() int
}

// Logger wraps zerolog with helpers for table storage events.
type Logger struct {
	*zerolog.Logger
}

// New creates a Logger writing structured events to w at the given level.
func New(w io.Writer, level zerolog.Level) Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return Logger{&zl}
}

// ParseLevel converts a level name ("debug", "info", ...) to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "unknown log level %q", s)
	}
	return level, nil
}

func (l Logger) loadTypeIntoEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	zeroLoggerEvent.Int("entity_count", target.Count())
	arrayLogger := zerolog.Arr()
	for _, id := range target.ComponentIDs() {
		arrayLogger = arrayLogger.Int(int(id))
	}
	return zeroLoggerEvent.Array("component_ids", arrayLogger)
}

// LogTable logs the composition and population of a table.
func (l Logger) LogTable(level zerolog.Level, target Loggable) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadTypeIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// LogActivation logs a table transitioning between empty and non-empty.
func (l Logger) LogActivation(level zerolog.Level, target Loggable, active bool) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadTypeIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Bool("active", active)
	zeroLoggerEvent.Msg("table activation changed")
}

// LogMerge logs a structural migration from src into dst.
func (l Logger) LogMerge(level zerolog.Level, dst Loggable, src Loggable, migrated int) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent.Int("migrated_entities", migrated)
	if dst != nil {
		dstDict := zerolog.Dict().Int("entity_count", dst.Count())
		arr := zerolog.Arr()
		for _, id := range dst.ComponentIDs() {
			arr = arr.Int(int(id))
		}
		zeroLoggerEvent.Dict("destination", dstDict.Array("component_ids", arr))
	}
	srcDict := zerolog.Dict().Int("entity_count", src.Count())
	arr := zerolog.Arr()
	for _, id := range src.ComponentIDs() {
		arr = arr.Int(int(id))
	}
	zeroLoggerEvent.Dict("source", srcDict.Array("component_ids", arr))
	zeroLoggerEvent.Msg("tables merged")
}
