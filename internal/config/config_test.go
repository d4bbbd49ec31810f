package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_ValidFile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cfgtool.toml")
	contents := "default_variant = \"lalr1\"\ndot_output_dir = \"out\"\ncolor = true\n"
	require.NoError(os.WriteFile(path, []byte(contents), 0o644))

	c, err := Load(path)
	require.NoError(err)
	assert.Equal("lalr1", c.DefaultVariant)
	assert.Equal("out", c.DotOutputDir)
	assert.True(c.Color)
}

func Test_Load_MissingFile(t *testing.T) {
	assert := assert.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(err)
}

func Test_Load_MalformedFile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(err)
}

func Test_Config_Variant(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
		want automaton.Variant
	}{
		{name: "lr0", cfg: Config{DefaultVariant: "lr0"}, want: automaton.LR0},
		{name: "slr1", cfg: Config{DefaultVariant: "slr1"}, want: automaton.SLR1},
		{name: "lr1", cfg: Config{DefaultVariant: "lr1"}, want: automaton.LR1},
		{name: "lalr1", cfg: Config{DefaultVariant: "lalr1"}, want: automaton.LALR1},
		{name: "unset defaults to lr1", cfg: Config{}, want: automaton.LR1},
		{name: "unrecognized defaults to lr1", cfg: Config{DefaultVariant: "bogus"}, want: automaton.LR1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.Variant())
		})
	}
}
