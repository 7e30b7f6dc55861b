package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/floorgen/pkg/config"
	"github.com/chazu/floorgen/pkg/engine"
	"github.com/chazu/floorgen/pkg/layout"
)

// loadFloor reads a floor description. .toml files go through the config
// loader; anything else is evaluated as Lisp.
func loadFloor(ctx context.Context, path string) (layout.Floor, error) {
	logger := loggerFromContext(ctx)

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		logger.Debug("loading TOML floor", "path", path)
		return config.LoadFile(path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return layout.Floor{}, err
	}
	logger.Debug("evaluating floor description", "path", path, "bytes", len(src))
	f, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return layout.Floor{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = fmt.Errorf("%s: %w", path, e)
		}
		return layout.Floor{}, errors.Join(errs...)
	}
	return *f, nil
}

// generate validates f, logs any warnings and returns its placements.
func generate(ctx context.Context, f layout.Floor) ([]layout.Placement, error) {
	logger := loggerFromContext(ctx)

	v := layout.Validate(f.Boundary, f.Spec)
	for _, w := range v.Warnings {
		logger.Warn(w.Message, "field", w.Field)
	}
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}

	prog := newProgress(logger)
	placements, err := layout.GenerateAll(f.Boundary, f.Spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	prog.done(fmt.Sprintf("Generated %d placements for %s (%s)", len(placements), f.Name, f.Spec.Kind))
	return placements, nil
}

// createOutput opens path for writing, creating parent directories.
func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
