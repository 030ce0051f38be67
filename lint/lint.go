package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/idlint/idlint/internal"
	tt "github.com/idlint/idlint/internal/types"
)

// LintEngine is the surface the processing helpers need from the engine.
type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New builds an engine from the configuration file at configurationPath.
// An empty path yields the default rule set.
func New(configurationPath string) (*internal.Engine, error) {
	if configurationPath == "" {
		return internal.NewEngine(nil)
	}
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Rules)
}

// ProcessSources lints in-memory sources one after another.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessFiles lints every given path, recursing into directories.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// fileResult pairs one worker's issues with its error.
type fileResult struct {
	issues []tt.Issue
	err    error
}

// ProcessPath lints one file, or every lintable file under one directory.
// Directory entries are processed by a CPU-bounded pool of workers.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	results := make(chan fileResult, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileIssues, err := processor(engine, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				results <- fileResult{issues: fileIssues, err: err}
				bar.Add(1)
			}(filePath)
		}
	}

	var issues []tt.Issue
	for range files {
		res := <-results
		if res.err != nil {
			continue
		}
		issues = append(issues, res.issues...)
	}

	fmt.Println()
	return issues, nil
}

// ProcessFile lints a single file through the engine.
func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource lints raw source through the engine.
func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing configuration: %w", err)
	}

	return config, nil
}
