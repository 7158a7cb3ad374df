package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// PresetPattern selects preset files relative to the catalog directory
const PresetPattern = "**/*.{yaml,yml,toml,json}"

// presetDoc is the on-disk shape of a preset
type presetDoc struct {
	Kind   string `yaml:"kind" toml:"kind" json:"kind"`
	Title  string `yaml:"title" toml:"title" json:"title"`
	X      int    `yaml:"x" toml:"x" json:"x"`
	Y      int    `yaml:"y" toml:"y" json:"y"`
	Width  int    `yaml:"width" toml:"width" json:"width"`
	Height int    `yaml:"height" toml:"height" json:"height"`
}

// presetFile is the on-disk shape of a preset file
type presetFile struct {
	Presets []presetDoc `yaml:"presets" toml:"presets" json:"presets"`
}

func (d presetDoc) preset() Preset {
	return Preset{
		Kind:     types.ContentKind(d.Kind),
		Title:    d.Title,
		Position: types.Position{X: d.X, Y: d.Y},
		Size:     types.Size{Width: d.Width, Height: d.Height},
	}
}

// LoadResult summarises a directory load
type LoadResult struct {
	Files   int
	Loaded  int
	Skipped int
}

// Loader reads preset overrides from a directory tree
type Loader struct {
	catalog *Catalog
	dir     string
	logger  *zap.Logger
}

// NewLoader creates a loader that fills catalog from dir
func NewLoader(catalog *Catalog, dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		catalog: catalog,
		dir:     dir,
		logger:  logger,
	}
}

// Load walks the directory and applies every preset file it finds.
// Bad files and bad presets are logged and skipped; the rest still load.
// A missing directory is not an error.
func (l *Loader) Load() (LoadResult, error) {
	var result LoadResult

	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		l.logger.Warn("Catalog directory not found", zap.String("dir", l.dir))
		return result, nil
	}

	files, err := l.findFiles()
	if err != nil {
		return result, fmt.Errorf("failed to scan catalog directory: %w", err)
	}
	result.Files = len(files)

	for _, path := range files {
		presets, err := ParseFile(path)
		if err != nil {
			l.logger.Warn("Failed to parse preset file", zap.String("path", path), zap.Error(err))
			result.Skipped++
			continue
		}

		for _, p := range presets {
			if err := l.catalog.Put(p); err != nil {
				l.logger.Warn("Rejected preset", zap.String("path", path), zap.Error(err))
				result.Skipped++
				continue
			}
			result.Loaded++
		}
	}

	l.logger.Info("Catalog loaded",
		zap.String("dir", l.dir),
		zap.Int("files", result.Files),
		zap.Int("loaded", result.Loaded),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// findFiles returns matching files sorted by path so later files override earlier ones deterministically
func (l *Loader) findFiles() ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.dir, p)
		if err != nil {
			return nil
		}
		matched, err := doublestar.Match(PresetPattern, filepath.ToSlash(rel))
		if err != nil || !matched {
			return nil
		}

		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ParseFile reads one preset file, choosing the decoder by extension
func ParseFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := checkText(data); err != nil {
		return nil, err
	}
	return Parse(strings.TrimPrefix(filepath.Ext(path), "."), data)
}

// checkText rejects binary files and text that is not UTF-8. Titles are
// rendered verbatim by the shell.
func checkText(data []byte) error {
	detected := mimetype.Detect(data)
	text := false
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			text = true
			break
		}
	}
	if !text {
		return fmt.Errorf("%w: not a text file (%s)", ErrInvalidPreset, detected.String())
	}

	if !utf8.Valid(data) {
		charset := "unknown"
		if r, err := chardet.NewTextDetector().DetectBest(data); err == nil {
			charset = r.Charset
		}
		return fmt.Errorf("%w: encoding %s, expected UTF-8", ErrInvalidPreset, charset)
	}
	return nil
}

// Parse decodes preset data in the given format (yaml, yml, toml, json)
func Parse(format string, data []byte) ([]Preset, error) {
	var file presetFile

	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	case "json":
		if err := sonic.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format: %s", format)
	}

	presets := make([]Preset, 0, len(file.Presets))
	for _, doc := range file.Presets {
		presets = append(presets, doc.preset())
	}
	return presets, nil
}
