// Package catalog reads lure catalogs from YAML documents.
//
// A catalog document is a single mapping with a "lures" list:
//
//	lures:
//	  - id: popper-silver
//	    primary_color: silver
//	    speed_kn: {min: 4, max: 8}
//
// Species names are canonicalized, colour tags normalized and the contrast
// category derived once per record, so the engine never repeats that work.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/lurespread/internal/domain/model"
)

type document struct {
	Lures []model.Lure `yaml:"lures"`
}

// Warning is a non fatal oddity found while loading, such as an unknown species.
type Warning struct {
	LureID  string
	Message string
}

// Result is a decoded catalog.
type Result struct {
	Lures    []model.Lure
	Warnings []Warning
}

// LoadFile reads and decodes the catalog at path.
func LoadFile(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode reads one catalog document. Unknown keys are rejected so typos in
// field names surface instead of silently dropping data.
func Decode(r io.Reader) (Result, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Result{Lures: []model.Lure{}}, nil
		}
		return Result{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	res := Result{Lures: make([]model.Lure, 0, len(doc.Lures))}
	seen := make(map[string]struct{}, len(doc.Lures))
	for i := range doc.Lures {
		l := doc.Lures[i]
		if err := check(i, &l); err != nil {
			return Result{}, err
		}
		if _, dup := seen[l.ID]; dup {
			return Result{}, fmt.Errorf("%w: %q", ErrDuplicateID, l.ID)
		}
		seen[l.ID] = struct{}{}

		l.Species, res.Warnings = canonicalSpecies(l.ID, l.Species, res.Warnings)
		res.Lures = append(res.Lures, l.Normalize())
	}
	return res, nil
}

func check(index int, l *model.Lure) error {
	switch {
	case l.ID == "":
		return fmt.Errorf("%w: entry %d has no id", ErrInvalidLure, index)
	case l.LengthCM < 0:
		return fmt.Errorf("%w: %s: negative length", ErrInvalidLure, l.ID)
	case l.Depth != nil && l.Depth.Min > l.Depth.Max:
		return fmt.Errorf("%w: %s: depth_m min above max", ErrInvalidLure, l.ID)
	case l.Speed != nil && l.Speed.Min > l.Speed.Max:
		return fmt.Errorf("%w: %s: speed_kn min above max", ErrInvalidLure, l.ID)
	}
	return nil
}

// canonicalSpecies maps free-form names onto canonical species, dropping
// duplicates. Unknown names are kept in normalized form and reported.
func canonicalSpecies(id string, in []model.Species, warnings []Warning) ([]model.Species, []Warning) {
	if len(in) == 0 {
		return in, warnings
	}
	out := make([]model.Species, 0, len(in))
	seen := make(map[model.Species]struct{}, len(in))
	for _, raw := range in {
		s, ok := model.ParseSpecies(string(raw))
		if !ok {
			warnings = append(warnings, Warning{LureID: id, Message: fmt.Sprintf("unknown species %q", raw)})
		}
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, warnings
}
