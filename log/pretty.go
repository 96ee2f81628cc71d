package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Colors used by the pretty handler. They are forced on, since the handler
// is only selected when colored output is wanted.
var (
	colorKey    = forceColor(color.FgHiBlack)
	colorString = forceColor(color.FgCyan)
	colorNumber = forceColor(color.FgYellow)
	colorTrue   = forceColor(color.FgGreen)
	colorFalse  = forceColor(color.FgRed)
	colorTime   = forceColor(color.FgBlue)
	colorOther  = forceColor(color.FgMagenta)
	colorError  = forceColor(color.FgRed, color.Bold)
	colorWarn   = forceColor(color.FgYellow, color.Bold)
	colorInfo   = forceColor(color.FgGreen, color.Bold)
	colorDebug  = forceColor(color.FgBlue, color.Bold)
	colorTrace  = forceColor(color.FgHiBlack, color.Bold)
)

func forceColor(attr ...color.Attribute) *color.Color {
	c := color.New(attr...)
	c.EnableColor()

	return c
}

// prettyHandler is a colorized text handler for terminals.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	prefix     string // qualified group name, with trailing "."
	attrs      []byte // preformatted attributes from WithAttrs
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	if formatTime == nil {
		formatTime = makeFormatTimeFunc(DefaultTimeLayout)
	}

	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(colorTime.Sprint(ts))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(levelColor(r.Level).Sprintf("%-5s", strings.ToUpper(Level(r.Level).String())))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			buf.WriteByte(' ')
			buf.WriteString(colorKey.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))

	for _, a := range attrs {
		writeAttr(buf, h.prefix, a)
	}

	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return colorError
	case level >= slog.LevelWarn:
		return colorWarn
	case level >= slog.LevelInfo:
		return colorInfo
	case level >= slog.LevelDebug:
		return colorDebug
	default:
		return colorTrace
	}
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}

		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range group {
			writeAttr(buf, prefix, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(colorKey.Sprint(prefix + a.Key + "="))
	writeValue(buf, a.Value)
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		buf.WriteString(colorString.Sprint(s))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		buf.WriteString(colorNumber.Sprint(v.String()))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(colorTrue.Sprint("true"))
		} else {
			buf.WriteString(colorFalse.Sprint("false"))
		}

	case slog.KindDuration:
		buf.WriteString(colorNumber.Sprint(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(colorTime.Sprint(v.Time().Format(time.RFC3339)))

	default:
		if err, ok := v.Any().(error); ok {
			buf.WriteString(colorFalse.Sprint(strconv.Quote(err.Error())))

			return
		}

		buf.WriteString(colorOther.Sprint(fmt.Sprint(v.Any())))
	}
}
