package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/dshills/potato/internal/renderer/core"
	"github.com/dshills/potato/internal/renderer/layout"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the configuration.

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of none, critical, error, warn, notice, info, debug.
	Level string

	// File is the log file path. Empty discards logs, since the terminal
	// belongs to the UI.
	File string
}

// Destination returns the path logs are written to: File, or the null
// device when File is empty.
func (l LogConfig) Destination() string {
	if l.File == "" {
		return os.DevNull
	}
	return l.File
}

// Verbosity returns the log verbosity for Level.
func (l LogConfig) Verbosity() (int, error) {
	return ParseVerbosity(l.Level)
}

// ParseVerbosity maps a level name to a verbosity, where -2 silences
// logging and each step up admits one more severity.
func ParseVerbosity(level string) (int, error) {
	switch strings.ToLower(level) {
	case "none", "quiet":
		return -2, nil
	case "critical":
		return -1, nil
	case "error":
		return 0, nil
	case "warn", "warning":
		return 1, nil
	case "notice":
		return 2, nil
	case "info":
		return 3, nil
	case "debug":
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidValue, level)
	}
}

// ViewConfig holds defaults for views.
type ViewConfig struct {
	// Wrap is the line wrap mode.
	Wrap layout.WrapMode

	// Foreground is the paint color. ColorDefault uses the surface's.
	Foreground core.Color
}

// StyleConfig is the style bound to a view style tag.
type StyleConfig struct {
	Foreground core.Color
	Background core.Color
	Bold       bool
	Italic     bool
	Underline  bool
}

// Apply layers the style over base. Default colors leave base's color and
// flags add to base's attributes.
func (s StyleConfig) Apply(base core.Style) core.Style {
	var attrs core.Attribute
	if s.Bold {
		attrs = attrs.With(core.AttrBold)
	}
	if s.Italic {
		attrs = attrs.With(core.AttrItalic)
	}
	if s.Underline {
		attrs = attrs.With(core.AttrUnderline)
	}
	overlay := core.NewStyle(s.Foreground).
		WithBackground(s.Background).
		WithAttributes(attrs)
	return base.Merge(overlay)
}

// HostConfig holds demo host settings.
type HostConfig struct {
	// PopulateDelay is how long after startup documents are populated.
	PopulateDelay time.Duration

	// WatchFile is a plain-text file whose contents are shown and
	// reloaded on change. Empty disables watching.
	WatchFile string
}

// Log returns the logging settings.
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level: c.getStringOr("log.level", "info"),
		File:  c.getStringOr("log.file", ""),
	}
}

// View returns the view defaults.
func (c *Config) View() ViewConfig {
	vc := ViewConfig{
		Wrap:       layout.WrapWordChar,
		Foreground: c.getColorOr("view.foreground", core.ColorDefault),
	}
	name := c.getStringOr("view.wrap", "word-char")
	if mode, ok := layout.ParseWrapMode(name); ok {
		vc.Wrap = mode
	} else {
		c.recordConfigError("view.wrap", fmt.Errorf("%w: wrap mode %q", ErrInvalidValue, name))
	}
	return vc
}

// Styles returns the style bound to every configured tag.
func (c *Config) Styles() map[string]StyleConfig {
	v, ok := c.Get("styles")
	if !ok {
		return map[string]StyleConfig{}
	}
	tags, ok := v.(map[string]any)
	if !ok {
		c.recordConfigError("styles", &TypeError{Path: "styles", Expected: "map", Actual: typeName(v)})
		return map[string]StyleConfig{}
	}

	out := make(map[string]StyleConfig, len(tags))
	for tag := range tags {
		out[tag] = c.Style(tag)
	}
	return out
}

// Style returns the style bound to tag. Unknown tags yield the zero
// style with default colors.
func (c *Config) Style(tag string) StyleConfig {
	prefix := "styles." + tag + "."
	return StyleConfig{
		Foreground: c.getColorOr(prefix+"foreground", core.ColorDefault),
		Background: c.getColorOr(prefix+"background", core.ColorDefault),
		Bold:       c.getBoolOr(prefix+"bold", false),
		Italic:     c.getBoolOr(prefix+"italic", false),
		Underline:  c.getBoolOr(prefix+"underline", false),
	}
}

// Host returns the demo host settings.
func (c *Config) Host() HostConfig {
	return HostConfig{
		PopulateDelay: c.getDurationOr("host.populateDelay", 0),
		WatchFile:     c.getStringOr("host.watchFile", ""),
	}
}

// These helpers return the default for a missing setting. Any other
// error is recorded and also yields the default.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

// getColorOr reads a "#rrggbb" color. An empty string is defaultValue.
func (c *Config) getColorOr(path string, defaultValue core.Color) core.Color {
	s, err := c.GetString(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	if s == "" {
		return defaultValue
	}
	color, err := core.ColorFromHex(s)
	if err != nil {
		c.recordConfigError(path, fmt.Errorf("%w: %v", ErrInvalidValue, err))
		return defaultValue
	}
	return color
}

func (c *Config) noteError(path string, err error) {
	if !errors.Is(err, ErrSettingNotFound) {
		c.recordConfigError(path, err)
	}
}

// recordConfigError keeps the first error seen for each path.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns the errors encountered by section accessors.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	return maps.Clone(c.configErrors)
}
