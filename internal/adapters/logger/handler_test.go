package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/breakdown/internal/adapters/logger"
)

func newPrettyLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestPrettyHandler_Attributes(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "record attributes",
			log:  func(l *slog.Logger) { l.Info("generated", "request", "req-1", "bytes", 12) },
			want: "generated request=req-1 bytes=12\n",
		},
		{
			name: "handler attributes come first",
			log:  func(l *slog.Logger) { l.With("kind", "template").Warn("skipping", "path", "a.txt") },
			want: "! skipping kind=template path=a.txt\n",
		},
		{
			name: "nested groups use dotted keys",
			log: func(l *slog.Logger) {
				l.WithGroup("span").WithGroup("policy").Debug("done", "step", "render")
			},
			want: "● done span.policy.step=render\n",
		},
		{
			name: "attributes added inside a group keep its prefix",
			log:  func(l *slog.Logger) { l.WithGroup("cache").With("size", 3).Info("evicted", "path", "p") },
			want: "evicted cache.size=3 cache.path=p\n",
		},
		{
			name: "group values flatten and empty attributes are dropped",
			log: func(l *slog.Logger) {
				l.Info("listed", slog.Group("manifest", "total", 2), slog.Attr{}, slog.Group("", "inline", true))
			},
			want: "listed manifest.total=2 inline=true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newPrettyLogger(t)
			tt.log(l)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_MultilineIndent(t *testing.T) {
	l, buf := newPrettyLogger(t)

	l.Error("first\n\nsecond", "request", "req-2")
	l.Info("plain\nnext")

	assert.Equal(t, "✗ first request=req-2\n\n  second\nplain\nnext\n", buf.String())
}
