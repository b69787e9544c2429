// Package loader reads serialized compilation units produced by the host
// toolchain: one JSON document per unit carrying the syntax tree and the
// symbol table the oracle answers from. The analyzer never parses source
// text itself.
package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"netlint/internal/observability"
	"netlint/internal/symbols"
	"netlint/internal/syntax"
)

const unitExt = ".unit.json"

// Unit is one loaded compilation unit: an immutable tree plus its oracle.
type Unit struct {
	Path    string
	Tree    *syntax.Node
	Symbols *symbols.Table
}

type unitFile struct {
	Path    string      `json:"path"`
	Tree    nodeJSON    `json:"tree"`
	Symbols symbolsJSON `json:"symbols"`
}

type nodeJSON struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Line     int        `json:"line,omitempty"`
	Column   int        `json:"column,omitempty"`
	Children []nodeJSON `json:"children,omitempty"`
}

type symbolsJSON struct {
	Types   []typeJSON   `json:"types"`
	Methods []methodJSON `json:"methods"`
}

type typeJSON struct {
	Name         string   `json:"name"`
	FullName     string   `json:"full_name"`
	Reference    bool     `json:"reference"`
	Capabilities []string `json:"capabilities"`
}

type methodJSON struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Extern   bool   `json:"extern"`
}

// LoadFile decodes one serialized compilation unit.
func LoadFile(path string) (*Unit, error) {
	start := time.Now()
	defer func() {
		observability.LoadDuration.Observe(time.Since(start).Seconds())
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var uf unitFile
	if err := json.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("decode unit %s: %w", path, err)
	}
	if uf.Path == "" {
		uf.Path = path
	}

	tree, err := buildNode(uf.Tree, uf.Path)
	if err != nil {
		return nil, fmt.Errorf("build tree for %s: %w", path, err)
	}

	table := symbols.NewTable()
	for _, t := range uf.Symbols.Types {
		table.Add(symbols.Symbol{
			Name:          t.Name,
			FullName:      t.FullName,
			Kind:          symbols.KindType,
			ReferenceType: t.Reference,
			Capabilities:  t.Capabilities,
		})
	}
	for _, m := range uf.Symbols.Methods {
		table.Add(symbols.Symbol{
			Name:     m.Name,
			FullName: m.FullName,
			Kind:     symbols.KindMethod,
			Extern:   m.Extern,
		})
	}

	return &Unit{Path: uf.Path, Tree: tree, Symbols: table}, nil
}

func buildNode(nj nodeJSON, file string) (*syntax.Node, error) {
	kind, ok := syntax.KindFromName(nj.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", nj.Kind)
	}

	children := make([]*syntax.Node, 0, len(nj.Children))
	for _, cj := range nj.Children {
		c, err := buildNode(cj, file)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}

	n := syntax.New(kind, nj.Text, children...)
	n.Span = syntax.Span{File: file, Line: nj.Line, Column: nj.Column}
	return n, nil
}

// ScanDirectories walks the input paths and returns every unit file not
// matched by the exclude globs.
func ScanDirectories(paths, excludeDirs, excludeFiles []string) ([]string, error) {
	dirGlobs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, fmt.Errorf("exclude dir pattern: %w", err)
	}
	fileGlobs, err := compileGlobs(excludeFiles)
	if err != nil {
		return nil, fmt.Errorf("exclude file pattern: %w", err)
	}

	var files []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !strings.HasSuffix(base, unitExt) {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
