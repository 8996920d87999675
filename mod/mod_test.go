package mod

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/thoriumlang/thc-sub002/sem"
)

func TestEmptyProject(t *testing.T) {
	root := newFS(t, []file{
		{path: "src/.keep", body: ""},
	})
	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(m.Sources) > 0 {
		t.Errorf("len(m.Sources)=%d, want 0", len(m.Sources))
	}
	if m.Config.Name != filepath.Base(root) {
		t.Errorf("m.Config.Name=%q, want %q", m.Config.Name, filepath.Base(root))
	}
	if m.SrcDir != filepath.Join(root, "src") {
		t.Errorf("m.SrcDir=%q, want %q", m.SrcDir, filepath.Join(root, "src"))
	}
}

func TestSourceDirNotFound(t *testing.T) {
	root := newFS(t, nil)
	if _, err := Load(root); err == nil {
		t.Fatalf("Load() succeeded, wanted an error")
	}
}

func TestSources(t *testing.T) {
	root := newFS(t, []file{
		{path: "src/Main.th", body: ""},
		{path: "src/a/b/C.th", body: ""},
		{path: "src/a/B.th", body: ""},
		{path: "src/a/notes.txt", body: ""},
		{path: "src/a/C.th_old", body: ""},
		{path: "src/.hidden/D.th", body: ""},
	})
	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []*Source{
		{Name: "Main", Namespace: "", Path: "Main.th"},
		{Name: "a.B", Namespace: "a", Path: "a/B.th"},
		{Name: "a.b.C", Namespace: "a.b", Path: "a/b/C.th"},
	}
	if diff := cmp.Diff(want, m.Sources, cmpopts.IgnoreFields(Source{}, "File")); diff != "" {
		t.Errorf("m.Sources mismatch (-want +got):\n%s", diff)
	}
	for _, src := range m.Sources {
		if want := filepath.Join(root, "src", filepath.FromSlash(src.Path)); src.File != want {
			t.Errorf("%s: File=%q, want %q", src.Name, src.File, want)
		}
	}
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Config
		err  string
	}{
		{
			name: "empty",
			body: "",
			want: Config{Sources: "src"},
		},
		{
			name: "all fields",
			body: `
name = "demo"
sources = "th"
classpath = "classpath.yaml"
trace = true
`,
			want: Config{Name: "demo", Sources: "th", ClassPath: "classpath.yaml", Trace: true},
		},
		{
			name: "malformed",
			body: `name = `,
			err:  `thorium.toml: .*`,
		},
		{
			name: "wrong type",
			body: `trace = "yes"`,
			err:  `thorium.toml: .*`,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			root := newFS(t, []file{{path: ConfigFile, body: test.body}})
			cfg, err := LoadConfig(filepath.Join(root, ConfigFile))
			switch {
			case test.err == "" && err != nil:
				t.Fatalf("LoadConfig failed: %s", err)
			case test.err != "" && err == nil:
				t.Fatalf("LoadConfig succeeded, want error matching %q", test.err)
			case test.err != "":
				if !regexp.MustCompile(test.err).MatchString(err.Error()) {
					t.Errorf("got error %q, want matching %q", err, test.err)
				}
				return
			}
			if !reflect.DeepEqual(*cfg, test.want) {
				t.Errorf("LoadConfig()=%+v, want %+v", *cfg, test.want)
			}
		})
	}
}

func TestConfigSources(t *testing.T) {
	root := newFS(t, []file{
		{path: ConfigFile, body: "name = \"demo\"\nsources = \"lib/th\"\n"},
		{path: "lib/th/p/C.th", body: ""},
	})
	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Config.Name != "demo" {
		t.Errorf("m.Config.Name=%q, want demo", m.Config.Name)
	}
	if len(m.Sources) != 1 || m.Sources[0].Name != "p.C" {
		t.Errorf("m.Sources=%v, want [p.C]", m.Sources)
	}
}

func TestNewCompilation(t *testing.T) {
	root := newFS(t, []file{
		{path: ConfigFile, body: "classpath = \"classpath.yaml\"\n"},
		{path: "classpath.yaml", body: "classes: [java.lang.Thread]\n"},
		{path: "src/p/C.th", body: "use java.lang.Thread; class C { val t: Thread; val d: D; }"},
		{path: "src/p/D.th", body: "class D { val n: Number = 1 }"},
	})
	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c, err := m.NewCompilation(sem.Config{})
	if err != nil {
		t.Fatalf("NewCompilation failed: %v", err)
	}
	if errs := c.CompileAll(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var names []string
	for _, u := range c.Units() {
		names = append(names, u.Name)
	}
	if diff := cmp.Diff([]string{"p.C", "p.D"}, names); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCompilationMissingClassPath(t *testing.T) {
	root := newFS(t, []file{
		{path: ConfigFile, body: "classpath = \"missing.yaml\"\n"},
		{path: "src/C.th", body: "class C { }"},
	})
	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := m.NewCompilation(sem.Config{}); err == nil {
		t.Errorf("NewCompilation succeeded, wanted an error")
	}
}

type file struct {
	path string
	body string
}

func newFS(t *testing.T, files []file) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.path))
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			t.Fatalf("failed to create %s: %s", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.body), 0644); err != nil {
			t.Fatalf("failed to write %s: %s", path, err)
		}
	}
	return root
}
