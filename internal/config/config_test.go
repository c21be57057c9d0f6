package config

import (
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/potato/internal/config/loader"
	"github.com/dshills/potato/internal/renderer/core"
	"github.com/dshills/potato/internal/renderer/layout"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

type staticEnv map[string]any

func (e staticEnv) Load() (map[string]any, error) {
	return loader.Clone(e), nil
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, LogConfig{Level: "info"}, c.Log())
	assert.Equal(t, ViewConfig{Wrap: layout.WrapWordChar, Foreground: core.ColorDefault}, c.View())
	assert.Equal(t, HostConfig{}, c.Host())
	assert.Empty(t, c.Styles())
	assert.Nil(t, c.ConfigErrors())
}

func TestLoadTOML(t *testing.T) {
	fsys := memFS{"/potato.toml": `
[log]
level = "debug"
file = "/tmp/potato.log"

[view]
wrap = "char"
foreground = "#d0d0d0"

[styles.h1]
foreground = "#ffaf00"
bold = true

[styles.quote]
italic = true

[host]
populateDelay = "1500ms"
watchFile = "notes.txt"
`}

	c, err := LoadWith(fsys, nil, "/potato.toml")
	require.NoError(t, err)

	assert.Equal(t, LogConfig{Level: "debug", File: "/tmp/potato.log"}, c.Log())

	v := c.View()
	assert.Equal(t, layout.WrapChar, v.Wrap)
	assert.True(t, v.Foreground.Equals(core.ColorFromRGB(0xd0, 0xd0, 0xd0)))

	styles := c.Styles()
	require.Len(t, styles, 2)
	assert.True(t, styles["h1"].Bold)
	assert.True(t, styles["h1"].Foreground.Equals(core.ColorFromRGB(0xff, 0xaf, 0x00)))
	assert.True(t, styles["h1"].Background.IsDefault())
	assert.True(t, styles["quote"].Italic)

	assert.Equal(t, HostConfig{PopulateDelay: 1500 * time.Millisecond, WatchFile: "notes.txt"}, c.Host())
	assert.Nil(t, c.ConfigErrors())
}

func TestLoadYAML(t *testing.T) {
	fsys := memFS{"/potato.yml": `
view:
  wrap: word
host:
  populateDelay: 250
styles:
  h2:
    underline: true
`}

	c, err := LoadWith(fsys, nil, "/potato.yml")
	require.NoError(t, err)

	assert.Equal(t, layout.WrapWord, c.View().Wrap)
	assert.Equal(t, 250*time.Millisecond, c.Host().PopulateDelay)
	assert.True(t, c.Style("h2").Underline)
	assert.Equal(t, "info", c.Log().Level, "defaults survive")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := LoadWith(memFS{}, nil, "/absent.toml")
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log().Level)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := LoadWith(memFS{}, nil, "/potato.json")
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestLoadParseError(t *testing.T) {
	_, err := LoadWith(memFS{"/bad.toml": "[log"}, nil, "/bad.toml")
	var pe *loader.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	fsys := memFS{"/potato.toml": `
[log]
level = "debug"
[host]
populateDelay = "1s"
`}
	env := staticEnv{
		"log":  map[string]any{"level": "error"},
		"host": map[string]any{"populateDelay": 2 * time.Second},
	}

	c, err := LoadWith(fsys, env, "/potato.toml")
	require.NoError(t, err)

	assert.Equal(t, "error", c.Log().Level)
	assert.Equal(t, 2*time.Second, c.Host().PopulateDelay)
}

func TestBadValuesFallBackAndAreRecorded(t *testing.T) {
	c := Default()
	require.NoError(t, c.Set("view.wrap", "sideways"))
	require.NoError(t, c.Set("view.foreground", "#nothex"))
	require.NoError(t, c.Set("styles.h1.bold", "yes please"))
	require.NoError(t, c.Set("host.populateDelay", "soon"))

	assert.Equal(t, ViewConfig{Wrap: layout.WrapWordChar, Foreground: core.ColorDefault}, c.View())
	assert.False(t, c.Style("h1").Bold)
	assert.Zero(t, c.Host().PopulateDelay)

	errs := c.ConfigErrors()
	assert.ErrorIs(t, errs["view.wrap"], ErrInvalidValue)
	assert.ErrorIs(t, errs["view.foreground"], ErrInvalidValue)
	assert.ErrorIs(t, errs["host.populateDelay"], ErrInvalidValue)
	var te *TypeError
	require.ErrorAs(t, errs["styles.h1.bold"], &te)
	assert.Equal(t, "bool", te.Expected)
	assert.Equal(t, "string", te.Actual)
}

func TestGetters(t *testing.T) {
	c := Default()
	require.NoError(t, c.Set("a.int", int64(3)))
	require.NoError(t, c.Set("a.float", 2.0))

	n, err := c.GetInt("a.int")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = c.GetInt("a.float")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = c.GetString("a.int")
	var te *TypeError
	assert.ErrorAs(t, err, &te)

	_, err = c.GetBool("a.missing")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	_, ok := c.Get("a.int.deeper")
	assert.False(t, ok)
}

func TestSetInvalidPath(t *testing.T) {
	c := Default()
	assert.ErrorIs(t, c.Set("", 1), ErrInvalidPath)
	assert.ErrorIs(t, c.Set("log.level.sub", 1), ErrInvalidPath)
}

func TestMergedIsCopy(t *testing.T) {
	c := Default()
	m := c.Merged()
	m["log"].(map[string]any)["level"] = "debug"
	assert.Equal(t, "info", c.Log().Level)
}

func TestParseVerbosity(t *testing.T) {
	tests := map[string]int{
		"none":    -2,
		"error":   0,
		"WARN":    1,
		"info":    3,
		"debug":   4,
		"warning": 1,
	}
	for level, want := range tests {
		got, err := ParseVerbosity(level)
		require.NoError(t, err, level)
		assert.Equal(t, want, got, level)
	}

	_, err := ParseVerbosity("loud")
	assert.ErrorIs(t, err, ErrInvalidValue)

	v, err := LogConfig{Level: "debug"}.Verbosity()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestLogDestination(t *testing.T) {
	assert.Equal(t, os.DevNull, LogConfig{}.Destination())
	assert.Equal(t, "potato.log", LogConfig{File: "potato.log"}.Destination())

	c := Default()
	assert.Equal(t, os.DevNull, c.Log().Destination())
	require.NoError(t, c.Set("log.file", "/tmp/p.log"))
	assert.Equal(t, "/tmp/p.log", c.Log().Destination())
}

func TestStyleConfigApply(t *testing.T) {
	base := core.DefaultStyle().WithForeground(core.ColorWhite)

	s := StyleConfig{Bold: true, Background: core.ColorBlack, Foreground: core.ColorDefault}.Apply(base)
	assert.True(t, s.Foreground.Equals(core.ColorWhite), "default keeps base")
	assert.True(t, s.Background.Equals(core.ColorBlack))
	assert.True(t, s.Attributes.Has(core.AttrBold))
	assert.False(t, s.Attributes.Has(core.AttrItalic))

	italic := core.NewStyle(core.ColorBlue).
		WithBackground(core.ColorWhite).
		WithAttributes(core.AttrItalic)
	s = StyleConfig{Foreground: core.ColorDefault, Background: core.ColorDefault, Underline: true}.Apply(italic)
	assert.True(t, s.Foreground.Equals(core.ColorBlue))
	assert.True(t, s.Background.Equals(core.ColorWhite), "default background keeps base")
	assert.True(t, s.Attributes.Has(core.AttrItalic), "base attributes are kept")
	assert.True(t, s.Attributes.Has(core.AttrUnderline))
}
