package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/levels/formats"
)

//go:embed builtin/levels.json
var builtinLevels []byte

// Pack is an ordered list of levels read from one source.
type Pack struct {
	Name    string
	Source  string
	Levels  []Level
	Reports []Report // one per level, same order
}

// Len returns the number of levels.
func (p Pack) Len() int { return len(p.Levels) }

// Level returns level i.
func (p Pack) Level(i int) (Level, error) {
	if i < 0 || i >= len(p.Levels) {
		return Level{}, fmt.Errorf("%w: index %d of %d", ErrLevelNotFound, i, len(p.Levels))
	}
	return p.Levels[i], nil
}

// Find returns the index of the level with the given name.
func (p Pack) Find(name string) (int, error) {
	for i, lvl := range p.Levels {
		if strings.EqualFold(lvl.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrLevelNotFound, name)
}

// LoadPack decodes and normalises a pack. Validation findings are kept in
// Reports; only undecodable content is an error.
func LoadPack(data []byte, ext string, defaultGrid grid.Grid) (Pack, error) {
	raws, err := formats.Decode(data, ext)
	if err != nil {
		return Pack{}, fmt.Errorf("levels: %w", err)
	}
	if len(raws) == 0 {
		return Pack{}, ErrNoLevels
	}

	pack := Pack{
		Levels:  make([]Level, 0, len(raws)),
		Reports: make([]Report, 0, len(raws)),
	}
	for i, raw := range raws {
		lvl, err := Parse(raw, defaultGrid)
		if err != nil {
			return Pack{}, fmt.Errorf("level %d: %w", i+1, err)
		}
		pack.Levels = append(pack.Levels, lvl)
		pack.Reports = append(pack.Reports, Validate(raw))
	}
	return pack, nil
}

// LoadPackFile reads a pack from disk; the file extension picks the format.
func LoadPackFile(path string, defaultGrid grid.Grid) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("levels: reading %s: %w", path, err)
	}

	pack, err := LoadPack(data, filepath.Ext(path), defaultGrid)
	if err != nil {
		if errors.Is(err, ErrNoLevels) {
			return Pack{}, fmt.Errorf("%w in %s", ErrNoLevels, path)
		}
		return Pack{}, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	pack.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pack.Source = path
	return pack, nil
}

// Builtin returns the embedded level pack.
func Builtin(defaultGrid grid.Grid) (Pack, error) {
	pack, err := LoadPack(builtinLevels, ".json", defaultGrid)
	if err != nil {
		return Pack{}, fmt.Errorf("levels: builtin pack: %w", err)
	}
	pack.Name = "builtin"
	pack.Source = "builtin"
	return pack, nil
}

// Loader finds level packs below a directory.
type Loader struct {
	Root        string
	DefaultGrid grid.Grid
}

// NewLoader creates a loader for root.
func NewLoader(root string, defaultGrid grid.Grid) *Loader {
	return &Loader{Root: root, DefaultGrid: defaultGrid}
}

// LoadAll recursively loads every supported pack file, sorted by path.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Pack, error) {
	var packs []Pack

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.Supported(filepath.Ext(path)) {
			return nil
		}

		pack, err := LoadPackFile(path, l.DefaultGrid)
		if err != nil {
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].Source < packs[j].Source
	})
	return packs, nil
}

// LoadByName returns the pack whose file name (without extension) is name.
func (l *Loader) LoadByName(name string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}
	for _, p := range packs {
		if p.Name == name {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("levels: pack not found: %s", name)
}
