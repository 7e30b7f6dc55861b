package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/layout"
)

func TestLoadPoints(t *testing.T) {
	src := `
name = "kitchen"

[boundary]
points = [[0, 0], [4, 0], [4, 3], [0, 3]]

[pattern]
kind = "herringbone"
unit_width = 0.1
rotation = 90
seed = 7
random_offset = true
`
	f, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Name != "kitchen" {
		t.Errorf("name = %q", f.Name)
	}
	if len(f.Boundary) != 4 || f.Boundary[2] != (geom.Vec2{X: 4, Y: 3}) {
		t.Errorf("boundary = %v", f.Boundary)
	}

	want := layout.DefaultSpec(layout.Herringbone)
	want.UnitWidth = 0.1
	want.Rotation = 90
	want.Seed = 7
	want.RandomOffset = true
	if f.Spec != want {
		t.Errorf("spec = %+v\nwant %+v", f.Spec, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind layout.Kind
	}{
		{"no pattern table", "[boundary]\nwidth = 4\nlength = 4\n", layout.Boards},
		{"kind only", "[boundary]\nwidth = 4\nlength = 4\n[pattern]\nkind = \"tile\"\n", layout.Tile},
		{"dashed kind", "[boundary]\nwidth = 4\nlength = 4\n[pattern]\nkind = \"stepping-stone\"\n", layout.SteppingStone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if f.Spec != layout.DefaultSpec(tt.kind) {
				t.Errorf("spec = %+v, want %s defaults", f.Spec, tt.kind)
			}
			if f.Name != "floor" {
				t.Errorf("default name = %q", f.Name)
			}
			want := layout.RectBoundary(4, 4)
			for i := range want {
				if f.Boundary[i] != want[i] {
					t.Errorf("vertex %d = %v, want %v", i, f.Boundary[i], want[i])
				}
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown top-level key",
			src:     "colour = \"red\"\n[boundary]\nwidth = 1\nlength = 1\n",
			wantErr: ErrUnknownKey,
			wantMsg: "colour",
		},
		{
			name:    "unknown pattern key",
			src:     "[boundary]\nwidth = 1\nlength = 1\n[pattern]\nunit_widht = 0.2\n",
			wantErr: ErrUnknownKey,
			wantMsg: "pattern.unit_widht",
		},
		{
			name:    "missing boundary",
			src:     "[pattern]\nkind = \"tile\"\n",
			wantErr: layout.ErrInvalidBoundary,
		},
		{
			name:    "points and rectangle",
			src:     "[boundary]\nwidth = 1\nlength = 1\npoints = [[0, 0], [1, 0], [1, 1]]\n",
			wantErr: layout.ErrInvalidBoundary,
		},
		{
			name:    "unknown kind",
			src:     "[boundary]\nwidth = 1\nlength = 1\n[pattern]\nkind = \"basketweave\"\n",
			wantMsg: "basketweave",
		},
		{
			name:    "bad toml",
			src:     "[boundary\n",
			wantMsg: "config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hall.toml")
	src := "name = \"hall\"\n[boundary]\nwidth = 1.2\nlength = 6\n[pattern]\nkind = \"boards\"\ngap = 0.003\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Name != "hall" || f.Spec.Gap != 0.003 {
		t.Errorf("floor = %+v", f)
	}
	if _, err := layout.GenerateAll(f.Boundary, f.Spec); err != nil {
		t.Errorf("loaded floor does not generate: %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("oops = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("error should name the file, got %v", err)
	}
}
