package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/gobwas/glob"
)

// Matcher selects unit documents by slash-separated globs relative to a root.
// "**" crosses directory boundaries, "*" does not.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewMatcher(paths PathsConfig) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range paths.Include {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", p, err)
		}
		m.include = append(m.include, g)
	}
	for _, p := range paths.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

// Match reports whether the slash path rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	return matchAny(m.include, rel) && !matchAny(m.exclude, rel)
}

// matchAny also tries "/"+rel so that "**/x" matches x at the root.
func matchAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match("/"+rel) {
			return true
		}
	}
	return false
}

// CollectFiles walks root and returns matching files in lexical order.
func CollectFiles(root string, paths PathsConfig) ([]string, error) {
	m, err := NewMatcher(paths)
	if err != nil {
		return nil, err
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if m.Match(filepath.ToSlash(rel)) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(out)
	return out, nil
}
