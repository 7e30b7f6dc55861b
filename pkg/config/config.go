// Package config reads floor descriptions from TOML.
//
//	name = "kitchen"
//
//	[boundary]
//	points = [[0, 0], [4, 0], [4, 3], [0, 3]]   # or: width = 4, length = 3
//
//	[pattern]
//	kind = "herringbone"
//	unit_width = 0.1
//	rotation = 90
//
// Pattern keys mirror layout.Spec in snake_case; anything left out takes
// the kind's defaults. Lengths are in metres.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/layout"
)

// ErrUnknownKey reports keys the format does not define, usually typos.
var ErrUnknownKey = errors.New("unknown key")

type document struct {
	Name     string        `toml:"name"`
	Boundary boundaryTable `toml:"boundary"`
	Pattern  layout.Spec   `toml:"pattern"`
}

type boundaryTable struct {
	Points [][2]float64 `toml:"points"`
	Width  float64      `toml:"width"`
	Length float64      `toml:"length"`
}

func (b boundaryTable) boundary() (layout.Boundary, error) {
	hasRect := b.Width != 0 || b.Length != 0
	switch {
	case len(b.Points) > 0 && hasRect:
		return nil, fmt.Errorf("%w: give either points or width and length", layout.ErrInvalidBoundary)
	case hasRect:
		return layout.RectBoundary(b.Width, b.Length), nil
	case len(b.Points) > 0:
		out := make(layout.Boundary, len(b.Points))
		for i, p := range b.Points {
			out[i] = geom.Vec2{X: p[0], Y: p[1]}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: [boundary] needs points or width and length", layout.ErrInvalidBoundary)
}

// Load decodes one floor from r. The result is not validated beyond its
// shape; layout.Validate reports parameter problems.
func Load(r io.Reader) (layout.Floor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return layout.Floor{}, fmt.Errorf("config: read: %w", err)
	}

	// The kind picks the defaults, so it is decoded on its own first.
	var head struct {
		Pattern struct {
			Kind layout.Kind `toml:"kind"`
		} `toml:"pattern"`
	}
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&head); err != nil {
		return layout.Floor{}, fmt.Errorf("config: %w", err)
	}

	doc := document{
		Name:    "floor",
		Pattern: layout.DefaultSpec(head.Pattern.Kind),
	}
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		return layout.Floor{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return layout.Floor{}, fmt.Errorf("config: %w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	b, err := doc.Boundary.boundary()
	if err != nil {
		return layout.Floor{}, fmt.Errorf("config: %w", err)
	}
	return layout.Floor{Name: doc.Name, Boundary: b, Spec: doc.Pattern}, nil
}

// LoadFile reads the floor described by the TOML file at path.
func LoadFile(path string) (layout.Floor, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Floor{}, err
	}
	defer f.Close()

	floor, err := Load(f)
	if err != nil {
		return layout.Floor{}, fmt.Errorf("%s: %w", path, err)
	}
	return floor, nil
}
