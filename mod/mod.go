// Package mod loads Thorium projects:
// their configuration and the list of their source files.
package mod

import (
	"fmt"
	"io/fs"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoriumlang/thc-sub002/sem"
)

// Ext is the extension of Thorium source files.
const Ext = ".th"

// A Mod contains information about the sources of a project.
type Mod struct {
	Config *Config
	// Dir is the absolute path of the project directory.
	Dir string
	// SrcDir is the absolute path of the source root.
	SrcDir string
	// Sources are the source files of the project
	// in alphabetical order on Name.
	Sources []*Source
}

// A Source is a source file of a project.
type Source struct {
	// Name is the fully-qualified name of the type the file declares.
	Name string
	// Namespace is derived from the directory of the file
	// relative to the source root.
	Namespace string
	// Path is the slash-separated path of the file relative to the source root.
	Path string
	// File is the absolute path of the file.
	File string
}

// Load returns the *Mod of the project in dir.
//
// The project file is optional;
// without one, the project is named after the directory
// and its sources are in the src directory.
func Load(dir string) (*Mod, error) {
	dir, err := realPath(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(filepath.Join(dir, ConfigFile))
	switch {
	case os.IsNotExist(err):
		cfg = &Config{Sources: "src"}
	case err != nil:
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = filepath.Base(dir)
	}
	m := &Mod{
		Config: cfg,
		Dir:    dir,
		SrcDir: filepath.Join(dir, filepath.FromSlash(cfg.Sources)),
	}
	if m.Sources, err = Sources(m.SrcDir); err != nil {
		return nil, err
	}
	return m, nil
}

func realPath(dir string) (string, error) {
	switch dir {
	case string([]rune{filepath.Separator}):
		return dir, nil
	case ".":
		return os.Getwd()
	default:
		base := filepath.Base(dir)
		dir, err := realPath(filepath.Dir(dir))
		if err != nil {
			return "", err
		}
		switch base {
		case ".":
			return dir, nil
		case "..":
			return filepath.Dir(dir), nil
		default:
			return filepath.Join(dir, base), nil
		}
	}
}

// Sources returns the source files under srcDir.
// A file a/b/C.th declares the type a.b.C in the namespace a.b.
func Sources(srcDir string) ([]*Source, error) {
	stat, err := os.Stat(srcDir)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", srcDir)
	}
	var srcs []*Source
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir() && path != srcDir && strings.HasPrefix(d.Name(), "."):
			return filepath.SkipDir
		case d.IsDir() || filepath.Ext(path) != Ext:
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		srcs = append(srcs, newSource(filepath.ToSlash(rel), path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(srcs, func(i, j int) bool { return srcs[i].Name < srcs[j].Name })
	return srcs, nil
}

func newSource(rel, file string) *Source {
	name := strings.Replace(strings.TrimSuffix(rel, Ext), "/", ".", -1)
	var ns string
	if i := strings.LastIndex(name, "."); i >= 0 {
		ns = name[:i]
	}
	return &Source{Name: name, Namespace: ns, Path: rel, File: file}
}

// Read returns the text of the source file.
func (s *Source) Read() (string, error) {
	data, err := ioutil.ReadFile(s.File)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewCompilation returns a compilation of the sources of the project.
//
// The host class path manifest of the project, if any,
// is loaded after the runtime library.
// Trace is turned on if either the project or cfg turn it on.
func (m *Mod) NewCompilation(cfg sem.Config) (*sem.Compilation, error) {
	if m.Config.ClassPath != "" {
		path := filepath.FromSlash(m.Config.ClassPath)
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.Dir, path)
		}
		host, err := sem.ReadHostLoader(path)
		if err != nil {
			return nil, err
		}
		if cfg.Loaders == nil {
			cfg.Loaders = []sem.TypeLoader{sem.LibLoader{}}
		}
		cfg.Loaders = append(cfg.Loaders, host)
	}
	cfg.Trace = cfg.Trace || m.Config.Trace
	c := sem.NewCompilation(cfg)
	for _, src := range m.Sources {
		text, err := src.Read()
		if err != nil {
			return nil, err
		}
		if err := c.Add(src.Name, src.Namespace, src.Path, text); err != nil {
			return nil, err
		}
	}
	return c, nil
}
