package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/sirupsen/logrus"

	"github.com/gogpu/rescale"
)

// initLogger builds the command logger. Debug mode logs everything as
// colored text with full timestamps; otherwise info and above are logged as
// JSON.
func initLogger(debug bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debug {
		logger.SetLevel(logrus.TraceLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// logrusHandler is a slog.Handler writing to a logrus logger, so library
// log records end up in the command's log stream.
type logrusHandler struct {
	log    *logrus.Logger
	fields logrus.Fields
	group  string
}

func newSlogLogger(l *logrus.Logger) *slog.Logger {
	return slog.New(&logrusHandler{log: l, fields: logrus.Fields{}})
}

func logrusLevel(l slog.Level) logrus.Level {
	switch {
	case l >= slog.LevelError:
		return logrus.ErrorLevel
	case l >= slog.LevelWarn:
		return logrus.WarnLevel
	case l >= slog.LevelInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

func (h *logrusHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.log.IsLevelEnabled(logrusLevel(l))
}

func (h *logrusHandler) Handle(ctx context.Context, r slog.Record) error {
	fields := make(logrus.Fields, len(h.fields)+r.NumAttrs())
	for k, v := range h.fields {
		fields[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		h.addAttr(fields, a)
		return true
	})
	entry := h.log.WithContext(ctx).WithFields(fields)
	if !r.Time.IsZero() {
		entry = entry.WithTime(r.Time)
	}
	entry.Log(logrusLevel(r.Level), r.Message)
	return nil
}

func (h *logrusHandler) addAttr(fields logrus.Fields, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	fields[key] = a.Value.Resolve().Any()
}

func (h *logrusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &logrusHandler{log: h.log, fields: make(logrus.Fields, len(h.fields)+len(attrs)), group: h.group}
	for k, v := range h.fields {
		next.fields[k] = v
	}
	for _, a := range attrs {
		next.addAttr(next.fields, a)
	}
	return next
}

func (h *logrusHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	g := name
	if h.group != "" {
		g = h.group + "." + name
	}
	return &logrusHandler{log: h.log, fields: h.fields, group: g}
}

// logObserver reports resize progress for one file through logrus.
type logObserver struct {
	entry *logrus.Entry
}

func newLogObserver(l *logrus.Logger, file string) *logObserver {
	return &logObserver{entry: l.WithField("file", file)}
}

func (o *logObserver) Observe(e rescale.Event) {
	switch e.Kind {
	case rescale.EventStart:
		o.entry.WithFields(logrus.Fields{
			"algorithm": e.Algorithm.String(),
			"src_width": e.SrcWidth, "src_height": e.SrcHeight,
			"dst_width": e.DstWidth, "dst_height": e.DstHeight,
		}).Debug("Resampling started")
	case rescale.EventSample:
		o.entry.Debug(e.String())
	case rescale.EventProgress:
		o.entry.WithField("rows", e.RowsDone).Trace("Rows completed")
	case rescale.EventDone:
		o.entry.WithField("elapsed", e.Elapsed.String()).Debug("Resampling finished")
	}
}
