package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Pattern matches catalog files below a directory
const Pattern = "**/*.{yaml,yml,toml}"

// file is the on-disk shape of a catalog document
type file struct {
	Apps []App `yaml:"apps" toml:"apps"`
}

// Load reads every catalog file under dir. Symlinks are not followed.
func Load(dir string) ([]App, error) {
	var (
		mu    sync.Mutex
		found []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if ok, _ := doublestar.Match(Pattern, filepath.ToSlash(rel)); ok {
			mu.Lock()
			found = append(found, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk catalog dir %s: %w", dir, err)
	}
	sort.Strings(found)

	var apps []App
	for _, name := range found {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		entries, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		apps = append(apps, entries...)
	}
	return apps, nil
}

// LoadFS reads every catalog file in fsys. Files are visited in lexical
// order so the resulting order is stable.
func LoadFS(fsys fs.FS) ([]App, error) {
	matches, err := doublestar.Glob(fsys, Pattern)
	if err != nil {
		return nil, fmt.Errorf("glob catalog files: %w", err)
	}

	var apps []App
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		entries, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		apps = append(apps, entries...)
	}
	return apps, nil
}

// Parse decodes one catalog document, choosing the format by extension
func Parse(name string, data []byte) ([]App, error) {
	var doc file
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("parse %s: unsupported format %q", name, ext)
	}

	for _, a := range doc.Apps {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return doc.Apps, nil
}

// FromDir returns the built-in catalog extended with the apps found in dir.
// An empty dir yields the built-in catalog.
func FromDir(dir string) (*Catalog, error) {
	base := Default()
	if dir == "" {
		return base, nil
	}
	extra, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return base.With(extra...)
}
