package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/pipeline"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Computed layout")

	if !strings.Contains(buf.String(), "Computed layout (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestSetCLIDefaults(t *testing.T) {
	var opts pipeline.Options
	setCLIDefaults(&opts)

	if opts.Style != pipeline.DefaultStyle || opts.View != pipeline.DefaultView || opts.Scale != pipeline.DefaultScale {
		t.Errorf("render defaults not applied: %+v", opts)
	}
	if opts.ScriptTimeout <= 0 {
		t.Error("script timeout not set")
	}
	if opts.Formats != nil || opts.Logger != nil {
		t.Error("formats and logger should be left for the command to set")
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name  string
		flags cacheFlags
		check func(cache.Cache) bool
	}{
		{"no cache", cacheFlags{noCache: true}, func(c cache.Cache) bool { _, ok := c.(*cache.NullCache); return ok }},
		{"default dir", cacheFlags{}, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
		{"url", cacheFlags{url: "none"}, func(c cache.Cache) bool { _, ok := c.(*cache.NullCache); return ok }},
		{"no-cache wins", cacheFlags{url: t.TempDir(), noCache: true}, func(c cache.Cache) bool { _, ok := c.(*cache.NullCache); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(context.Background(), tt.flags)
			if err != nil {
				t.Fatalf("newCache() error = %v", err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("newCache() = %T", c)
			}
		})
	}

	if _, err := newCache(context.Background(), cacheFlags{url: "memcached://localhost"}); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}
