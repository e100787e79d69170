package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/QTest-hq/classscan/internal/config"
	"github.com/QTest-hq/classscan/internal/filescan"
	"github.com/QTest-hq/classscan/internal/lexer"
	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/QTest-hq/classscan/internal/token"
	"github.com/rs/zerolog/log"
)

var errNoClass = errors.New("no matching class")

// isTokenDump reports whether path holds a serialized token stream rather
// than PHP source.
func isTokenDump(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// loadTokens returns the token stream for path, lexing PHP source or
// decoding a dump.
func loadTokens(ctx context.Context, path string) ([]token.Token, error) {
	if isTokenDump(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open token dump: %w", err)
		}
		defer f.Close()

		tokens, err := token.Decode(f, token.DetectFormat(path))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return tokens, nil
	}

	tokens, err := lexer.New().TokenizeFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}
	return tokens, nil
}

// projectSettings resolves the effective settings: project file, then
// environment, then command-line overrides.
func projectSettings(flags *globalFlags, overrides *config.ProjectConfig) (*config.ProjectConfig, error) {
	project, err := config.LoadProjectConfig(flags.projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	env, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	project.ApplyEnv(env)
	project.Merge(overrides)

	return project, nil
}

// scanPath tokenizes path and splits it into class scanners.
func scanPath(ctx context.Context, path string, project *config.ProjectConfig, opts ...filescan.Option) (*filescan.File, error) {
	tokens, err := loadTokens(ctx, path)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("file", path).Int("tokens", len(tokens)).Msg("tokens loaded")

	opts = append([]filescan.Option{
		filescan.WithNamespace(project.Namespace),
		filescan.WithImports(resolver.ImportMap(project.Imports)),
		filescan.WithFilter(project.Scan.Filter),
	}, opts...)

	file, err := filescan.Scan(tokens, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return file, nil
}

// selectClass picks one declaration by short or fully qualified name. With
// an empty name the file must declare exactly one class.
func selectClass(file *filescan.File, name string) (*scanner.ClassScanner, error) {
	if name == "" {
		switch len(file.Classes) {
		case 0:
			return nil, errNoClass
		case 1:
			return file.Classes[0].Scanner, nil
		default:
			return nil, fmt.Errorf("file declares %d classes, pick one with --class", len(file.Classes))
		}
	}

	want := strings.TrimPrefix(name, resolver.Separator)
	for _, c := range file.Classes {
		fqn, err := c.Scanner.Name()
		if err != nil {
			return nil, err
		}
		short, err := c.Scanner.ShortName()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(fqn, want) || strings.EqualFold(short, want) {
			return c.Scanner, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errNoClass, name)
}

// memberRef builds a lookup from the --name and --index flags.
func memberRef(name string, index int) (scanner.MemberRef, error) {
	switch {
	case name != "" && index >= 0:
		return nil, fmt.Errorf("use either --name or --index, not both")
	case name != "":
		return scanner.ByName(name), nil
	case index >= 0:
		return scanner.ByIndex(index), nil
	default:
		return nil, fmt.Errorf("one of --name or --index is required")
	}
}
