package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/minij/minij/lex"
	"github.com/dhamidi/minij/minij/parser"
)

var log = commonlog.GetLogger("minij.project")

// ConfigFiles lists the configuration file names looked up in the project
// root, in order of preference.
var ConfigFiles = []string{"minij.toml", "minij.yaml", "minij.yml"}

// Config holds the settings read from a project configuration file.
type Config struct {
	Src        string   `toml:"src" yaml:"src"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Format     string   `toml:"format" yaml:"format"`
	Verbosity  int      `toml:"verbosity" yaml:"verbosity"`
}

func DefaultConfig() Config {
	return Config{
		Src:        ".",
		Extensions: []string{".java"},
		Format:     "tree",
	}
}

// Project is a directory of source files of the teaching language.
type Project struct {
	RootDir string
	SrcDir  string
	// ConfigFile is empty when the defaults are in use.
	ConfigFile string
	Config     Config
}

// Load reads the project rooted at the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads the optional configuration file in rootDir and resolves the
// source directory.
func LoadFrom(rootDir string) (*Project, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read project directory: %s is not a directory", rootDir)
	}

	proj := &Project{RootDir: rootDir, Config: DefaultConfig()}
	for _, name := range ConfigFiles {
		path := filepath.Join(rootDir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		cfg, err := parseConfig(name, data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		proj.ConfigFile = path
		proj.Config = cfg
		log.Debugf("loaded configuration from %s", path)
		break
	}

	if err := proj.Config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	proj.SrcDir = filepath.Join(rootDir, proj.Config.Src)
	return proj, nil
}

// parseConfig decodes data according to the extension of name. Keys missing
// from the file keep their default values; unknown keys are an error.
func parseConfig(name string, data []byte) (Config, error) {
	cfg := DefaultConfig()
	switch filepath.Ext(name) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults untouched.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported configuration format %q", filepath.Ext(name))
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Src == "" {
		return fmt.Errorf("src must not be empty")
	}
	if filepath.IsAbs(c.Src) {
		return fmt.Errorf("src must be relative to the project root, got %s", c.Src)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative")
	}
	return nil
}

func (p *Project) hasSourceExtension(path string) bool {
	for _, ext := range p.Config.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// SourceFiles returns all source files below the source directory,
// recursively, in lexical order.
func (p *Project) SourceFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(p.SrcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.SrcDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !p.hasSourceExtension(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan source files in %s: %w", p.SrcDir, err)
	}

	sort.Strings(files)
	return files, nil
}

// Result is the outcome of checking one source file. Err is a *lex.Error or a
// *parser.SyntaxError when the file is not a valid program.
type Result struct {
	Path      string
	ClassName string
	Tree      *parser.Tree
	Err       error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// CheckFile tokenizes and parses the file at path. Only I/O failures are
// returned as an error; syntax problems are reported in the Result.
func CheckFile(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return CheckSource(path, src), nil
}

// CheckSource tokenizes and parses src as the contents of path.
func CheckSource(path string, src []byte) Result {
	result := Result{Path: path}
	tokens, err := lex.Tokenize(src, path)
	if err != nil {
		result.Err = err
		return result
	}
	tree, err := parser.Parse(tokens, parser.WithFile(path))
	if err != nil {
		result.Err = err
		return result
	}
	result.Tree = tree
	result.ClassName = ClassName(tree)
	return result
}

// Check parses every source file of the project.
func (p *Project) Check() ([]Result, error) {
	files, err := p.SourceFiles()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		result, err := CheckFile(file)
		if err != nil {
			return nil, err
		}
		if result.OK() {
			log.Debugf("%s: ok (class %s)", file, result.ClassName)
		} else {
			log.Debugf("%s: %v", file, result.Err)
		}
		results = append(results, result)
	}
	return results, nil
}

// ClassName returns the name of the class declared by a parsed program.
func ClassName(tree *parser.Tree) string {
	if tree == nil || tree.Root == nil {
		return ""
	}
	ident := tree.Root.FirstTerminal(lex.TokenID)
	if ident == nil {
		return ""
	}
	return ident.TokenLiteral()
}
