package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func expectedStyles() StyleSet {
	ss := *NewStyleSet()
	ss.Match = Style{Fg: ColorCyan | AttrBold, Bg: ColorRed}
	ss.Label = Style{Fg: ColorBlack, Bg: Attribute(0xffff00) | AttrTrueColor}
	return ss
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := New()
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultLabelChars, cfg.LabelChars)
	require.False(t, cfg.CaseSensitive)
	require.False(t, cfg.LineHugsTheContent)
	require.Equal(t, "flash.Go", cfg.Keymap["C-f"])
	require.Equal(t, "flash.Stop", cfg.Keymap["Esc"])
	require.Equal(t, ColorBlue, cfg.Style.LabelQuestion.Bg)
	require.Equal(t, 0, strings.Count(DefaultLabelChars, "?"), "the ambiguous marker is not a label")
}

func TestClone(t *testing.T) {
	t.Parallel()
	cfg := New()
	dup := cfg.Clone()
	dup.Keymap["C-f"] = "flash.Stop"
	dup.LabelChars = "abc"
	require.Equal(t, "flash.Go", cfg.Keymap["C-f"])
	require.Equal(t, DefaultLabelChars, cfg.LabelChars)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		chars string
		ok    bool
	}{
		{"default", DefaultLabelChars, true},
		{"single", "a", true},
		{"empty", "", false},
		{"duplicate", "abca", false},
		{"multibyte", "äöü", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := New()
			cfg.LabelChars = tt.chars
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
		})
	}

	cfg := New()
	cfg.LabelChars = ""
	require.ErrorIs(t, cfg.Validate(), ErrEmptyLabelChars)
}

func TestReadRC(t *testing.T) {
	t.Parallel()
	txt := `
{
	"LabelChars": "jkl",
	"CaseSensitive": true,
	"Keymap": {
		"C-x": "flash.Go"
	},
	"Style": {
		"Match": ["cyan", "bold", "on_red"],
		"Label": ["black", "on_#ffff00"]
	}
}
`
	cfg := New()
	require.NoError(t, json.Unmarshal([]byte(txt), cfg), "Unmarshalling config should succeed")
	require.Equal(t, "jkl", cfg.LabelChars)
	require.True(t, cfg.CaseSensitive)
	require.False(t, cfg.LineHugsTheContent)
	require.Equal(t, "flash.Go", cfg.Keymap["C-x"])
	require.Equal(t, expectedStyles(), cfg.Style)
}

func TestReadFilename(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"config.json": `{
	"LabelChars": "jkl",
	"LineHugsTheContent": true,
	"Keymap": {"C-x": "flash.Go"},
	"Style": {
		"Match": ["cyan", "bold", "on_red"],
		"Label": ["black", "on_#ffff00"]
	}
}`,
		"config.yaml": `
LabelChars: jkl
LineHugsTheContent: true
Keymap:
  C-x: flash.Go
Style:
  Match:
    - cyan
    - bold
    - on_red
  Label:
    - black
    - "on_#ffff00"
`,
		"config.toml": `
LabelChars = "jkl"
LineHugsTheContent = true

[Keymap]
C-x = "flash.Go"

[Style]
Match = ["cyan", "bold", "on_red"]
Label = ["black", "on_#ffff00"]
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			file := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

			cfg := New()
			require.NoError(t, cfg.ReadFilename(file))
			require.Equal(t, "jkl", cfg.LabelChars)
			require.True(t, cfg.LineHugsTheContent)
			require.Equal(t, "flash.Go", cfg.Keymap["C-x"])
			require.Equal(t, expectedStyles(), cfg.Style)
		})
	}
}

func TestReadFilenameErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := os.Stat(filepath.Join(dir, "missing.json"))
	require.True(t, os.IsNotExist(err))
	require.ErrorIs(t, New().ReadFilename(filepath.Join(dir, "missing.json")), os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`Style = { Match = 1 }`), 0o644))
	require.Error(t, New().ReadFilename(bad))

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"LabelChars": ""}`), 0o644))
	require.ErrorIs(t, New().ReadFilename(empty), ErrEmptyLabelChars)
}

type stringsToStyleTest struct {
	strings []string
	style   *Style
}

func TestStringsToStyle(t *testing.T) {
	t.Parallel()
	tests := []stringsToStyleTest{
		{
			strings: []string{"on_default", "default"},
			style:   &Style{Fg: ColorDefault, Bg: ColorDefault},
		},
		{
			strings: []string{"white", "on_magenta", "bold"},
			style:   &Style{Fg: ColorWhite | AttrBold, Bg: ColorMagenta},
		},
		{
			strings: []string{"underline", "on_240", "214"},
			style:   &Style{Fg: Attribute(214+1) | AttrUnderline, Bg: Attribute(240 + 1)},
		},
		{
			strings: []string{"#3e68d7", "bold"},
			style:   &Style{Fg: Attribute(0x3e68d7) | AttrTrueColor | AttrBold, Bg: ColorDefault},
		},
		{
			strings: []string{"white", "on_#ff007c"},
			style:   &Style{Fg: ColorWhite, Bg: Attribute(0xff007c) | AttrTrueColor},
		},
	}

	for _, test := range tests {
		var a Style
		require.NoError(t, StringsToStyle(&a, test.strings), "StringsToStyle should succeed")
		require.Equal(t, test.style, &a, "Expected '%s' to be '%#v', but got '%#v'", test.strings, test.style, a)
	}
}

func TestUnmarshalTOMLRejectsNonArrays(t *testing.T) {
	t.Parallel()
	var s Style
	require.Error(t, s.UnmarshalTOML("red"))
	require.Error(t, s.UnmarshalTOML([]any{"red", int64(1)}))
	require.NoError(t, s.UnmarshalTOML([]any{"red", "on_blue"}))
	require.Equal(t, Style{Fg: ColorRed, Bg: ColorBlue}, s)
}

// These two tests replace homedirFunc and must not run in parallel.

func TestLocateRcfile(t *testing.T) {
	dir := t.TempDir()

	homedirFunc = func() (string, error) {
		return dir, nil
	}

	expected := []string{
		filepath.Join(dir, "flash"),
		filepath.Join(dir, "1", "flash"),
		filepath.Join(dir, "2", "flash"),
		filepath.Join(dir, "3", "flash"),
		filepath.Join(dir, ".flash"),
	}

	i := 0
	locater := LocatorFunc(func(dir string) (string, error) {
		require.True(t, i <= len(expected)-1, "Got %d directories, only have %d", i+1, len(expected))
		require.Equal(t, expected[i], dir, "Expected %s, got %s", expected[i], dir)
		i++
		return "", errors.New("error: Not found")
	})

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", strings.Join(
		[]string{
			filepath.Join(dir, "1"),
			filepath.Join(dir, "2"),
			filepath.Join(dir, "3"),
		},
		string(filepath.ListSeparator),
	))

	_, err := LocateRcfile(locater)
	require.Error(t, err)
	require.Equal(t, len(expected), i)

	expected[0] = filepath.Join(dir, ".config", "flash")
	t.Setenv("XDG_CONFIG_HOME", "")
	i = 0
	_, err = LocateRcfile(locater)
	require.Error(t, err)
}

func TestLocateRcfileTOML(t *testing.T) {
	dir := t.TempDir()

	flashDir := filepath.Join(dir, ".flash")
	require.NoError(t, os.MkdirAll(flashDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(flashDir, "config.toml"), []byte(""), 0o644))

	homedirFunc = func() (string, error) {
		return dir, nil
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_DIRS", "")

	file, err := LocateRcfile(DefaultConfigLocator)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(flashDir, "config.toml"), file)
}
