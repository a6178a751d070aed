package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/compiler/gen"
)

func TestLoadFileConfig(t *testing.T) {
	t.Run("missing default file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		f, err := loadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, &fileConfig{}, f)
	})

	t.Run("default file in working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("root: Party\n"), 0o644))
		t.Chdir(dir)
		f, err := loadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, "Party", f.Root)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		f, err := loadFileConfig(path)
		require.NoError(t, err)
		assert.Equal(t, &fileConfig{}, f)
	})

	t.Run("all keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "full.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`diagram: shop.drawio
page: Ordering
target: out
extension: .kt
header: "// generated"
root: Party
abstract: ""
allow: [Menu Item, Line Item]
root_fields:
  - {name: email, type: String}
plural: inflect
merge: strict
strict: true
features: [snapshot, -label/float]
workers: 2
log: {level: debug, format: json}
`), 0o644))
		f, err := loadFileConfig(path)
		require.NoError(t, err)
		empty := ""
		assert.Equal(t, &fileConfig{
			Diagram:    "shop.drawio",
			Page:       "Ordering",
			Target:     "out",
			Extension:  ".kt",
			Header:     "// generated",
			Root:       "Party",
			Abstract:   &empty,
			Allow:      []string{"Menu Item", "Line Item"},
			RootFields: []*gen.Field{{Name: "email", Type: "String"}},
			Plural:     "inflect",
			Merge:      "strict",
			Strict:     true,
			Features:   []string{"snapshot", "-label/float"},
			Workers:    2,
			Log:        logConfig{Level: "debug", Format: "json"},
		}, f)

		cfg, err := f.config(nil)
		require.Error(t, err, "nil logger is rejected")
		assert.Nil(t, cfg)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("target: out\nlog:\n  level: warn\n"), 0o644))
		t.Chdir(dir)
		t.Setenv("CLASSGEN_TARGET", "gen")
		t.Setenv("CLASSGEN_LOG_LEVEL", "debug")
		t.Setenv("CLASSGEN_ALLOW", "Menu Item,Line Item")
		f, err := loadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, "gen", f.Target)
		assert.Equal(t, "debug", f.Log.Level)
		assert.Equal(t, []string{"Menu Item", "Line Item"}, f.Allow)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("targets: out\n"), 0o644))
		_, err := loadFileConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "targets")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("allow: [\n"), 0o644))
		_, err := loadFileConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}

func TestFileConfigOptions(t *testing.T) {
	log, err := newLogger(&bytes.Buffer{}, "info", "text")
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := (&fileConfig{}).config(log)
		require.NoError(t, err)
		assert.Equal(t, gen.DefaultRoot, cfg.Root)
		assert.Equal(t, gen.DefaultRoot, cfg.Abstract)
		assert.Equal(t, gen.DefaultTarget, cfg.Target)
		assert.Equal(t, gen.LastWriteWins, cfg.Merge)
		assert.Same(t, log, cfg.Logger)
	})

	t.Run("abstract follows root", func(t *testing.T) {
		cfg, err := (&fileConfig{Root: "Party"}).config(log)
		require.NoError(t, err)
		assert.Equal(t, "Party", cfg.Root)
		assert.Equal(t, "Party", cfg.Abstract)

		empty := ""
		cfg, err = (&fileConfig{Root: "Party", Abstract: &empty}).config(log)
		require.NoError(t, err)
		assert.Empty(t, cfg.Abstract)
	})

	t.Run("features and policies", func(t *testing.T) {
		cfg, err := (&fileConfig{
			Features: []string{"snapshot", "-label/float"},
			Strict:   true,
			Plural:   "inflect",
			Workers:  4,
		}).config(log)
		require.NoError(t, err)
		assert.Equal(t, []gen.Feature{gen.FeatureSnapshot}, cfg.Features)
		assert.Equal(t, gen.RejectConflicts, cfg.Merge)
		assert.Equal(t, "deliveries", cfg.Plural("delivery"))
		assert.Equal(t, 4, cfg.Workers)

		cfg, err = (&fileConfig{Merge: "strict"}).config(log)
		require.NoError(t, err)
		assert.Equal(t, gen.RejectConflicts, cfg.Merge)

		cfg, err = (&fileConfig{Merge: "last-write-wins"}).config(log)
		require.NoError(t, err)
		assert.Equal(t, gen.LastWriteWins, cfg.Merge)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, f := range []*fileConfig{
			{Features: []string{"-privacy"}},
			{Plural: "latin"},
			{Merge: "first-write-wins"},
			{Workers: -1},
			{Allow: []string{""}},
		} {
			_, err := f.config(log)
			assert.True(t, gen.IsConfigError(err), "%+v", f)
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)
	log.Debug("vertex skipped", "vertex", "9")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	assert.Contains(t, buf.String(), `"vertex":"9"`)

	buf.Reset()
	log, err = newLogger(&buf, "", "")
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	_, err = newLogger(&buf, "verbose", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "logfmt")
	assert.Error(t, err)
}
