package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 26, c.Len())

	chess, ok := c.Get("chess")
	require.True(t, ok)
	assert.Equal(t, "Chess", chess.Name)
	assert.Equal(t, CategoryGames, chess.Category)
	assert.Equal(t, "chess", chess.View)

	for _, a := range c.List(nil) {
		assert.NoError(t, a.Validate(), a.ID)
	}
}

func TestListByCategory(t *testing.T) {
	c := Default()
	games := CategoryGames
	list := c.List(&games)
	require.Len(t, list, 3)
	assert.Equal(t, "tetris", list[0].ID)

	total := 0
	for _, n := range c.Stats() {
		total += n
	}
	assert.Equal(t, c.Len(), total)
}

func TestLookup(t *testing.T) {
	c := Default()

	_, err := c.Lookup("terminal")
	assert.NoError(t, err)

	_, err = c.Lookup("solitaire")
	assert.ErrorIs(t, err, ErrUnknownApp)
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		apps []App
		want error
	}{
		{"missing id", []App{{Name: "x", Category: CategorySystem}}, ErrInvalidApp},
		{"missing name", []App{{ID: "x", Category: CategorySystem}}, ErrInvalidApp},
		{"bad category", []App{{ID: "x", Name: "X", Category: "toys"}}, ErrUnknownCategory},
		{"duplicate", []App{
			{ID: "x", Name: "X", Category: CategorySystem},
			{ID: "x", Name: "Y", Category: CategoryGames},
		}, ErrDuplicateApp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.apps...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDescriptor(t *testing.T) {
	a := App{ID: "notes", Name: "Notes", Category: CategoryProductivity, Props: map[string]interface{}{"dir": "/"}}
	d := a.Descriptor()
	assert.Equal(t, "notes", d.ID)
	assert.Equal(t, "Notes", d.Name)
	assert.Equal(t, "notes", d.View)
	assert.Equal(t, "/", d.Props["dir"])

	a.View = "markdown"
	assert.Equal(t, "markdown", a.Descriptor().View)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"games.yaml": {Data: []byte(`
apps:
  - id: solitaire
    name: Solitaire
    icon: spade
    category: games
`)},
		"nested/tools.toml": {Data: []byte(`
[[apps]]
id = "hexdump"
name = "Hex Dump"
icon = "binary"
view = "hex"
category = "developer"
`)},
		"README.md": {Data: []byte("ignored")},
	}

	apps, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "solitaire", apps[0].ID)
	assert.Equal(t, CategoryGames, apps[0].Category)
	assert.Equal(t, "hexdump", apps[1].ID)
	assert.Equal(t, "hex", apps[1].View)
}

func TestLoadFSInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yml": {Data: []byte("apps:\n  - id: x\n    name: X\n    category: toys\n")},
	}
	_, err := LoadFS(fsys)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	fsys = fstest.MapFS{
		"broken.toml": {Data: []byte("[[apps]\n")},
	}
	_, err = LoadFS(fsys)
	assert.Error(t, err)
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("apps.json", []byte("{}"))
	assert.Error(t, err)
}

func TestFromDir(t *testing.T) {
	c, err := FromDir("")
	require.NoError(t, err)
	assert.Equal(t, 26, c.Len())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(`
apps:
  - id: paint
    name: Paint
    category: media
`), 0o644))

	c, err = FromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 27, c.Len())
	_, ok := c.Get("paint")
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.yaml"), []byte(`
apps:
  - id: chess
    name: Chess Again
    category: games
`), 0o644))
	_, err = FromDir(dir)
	assert.ErrorIs(t, err, ErrDuplicateApp)
}

func TestLoadWalksNestedDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "team", "tools")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "tools.toml"), []byte(`
[[apps]]
id = "profiler"
name = "Profiler"
category = "developer"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a catalog"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("apps: [{id: beta, name: Beta, category: system}]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("apps: [{id: alpha, name: Alpha, category: system}]"), 0o644))

	apps, err := Load(dir)
	require.NoError(t, err)
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"alpha", "beta", "profiler"}, ids)
}
