package control

import (
	"fmt"
	"strings"

	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/sky"
)

var (
	// FallbackPalette colors filters with no canonical color of their own.
	FallbackPalette = []string{"magenta", "cyan", "yellow", "orange", "purple", "pink", "turquoise", "lavender"}

	// PrimaryFilter is the canonical red optical channel. Objects without
	// one get their own default colors ahead of the fallback palette.
	PrimaryFilter = "optical_red"

	canonicalPrefix = "optical_"
)

type Assignment struct {
	Filter string
	Color  ecolor.Color
}

// ShortName strips the optical_ prefix; "optical_green" -> "green".
func ShortName(filter string) string {
	if i := strings.LastIndex(filter, canonicalPrefix); i >= 0 {
		return filter[i+len(canonicalPrefix):]
	}
	return filter
}

// AssignColors gives every filter a distinct color, in filter order. A
// filter whose short name is one of the object's default colors gets
// that color, unless it was already handed out; the rest take the next
// unused color from the palette. The palette starts afresh for every
// call, i.e. for every object.
func AssignColors(filters, defaultColors []string) ([]Assignment, error) {
	palette := append([]string{}, FallbackPalette...)
	if !contains(filters, PrimaryFilter) {
		palette = append(append([]string{}, defaultColors...), palette...)
	}

	used := map[string]bool{} // by hex, so "red" and "#ff0000" clash
	out := make([]Assignment, 0, len(filters))

	for _, f := range filters {
		var chosen ecolor.Color

		if short := ShortName(f); contains(defaultColors, short) {
			c, err := ecolor.Parse(short)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %v: %w", f, err, sky.ErrInvalidLayerParameter)
			}
			if !used[c.Hex()] {
				chosen = c
			}
		}

		for chosen.IsZero() {
			if len(palette) == 0 {
				return nil, fmt.Errorf("no color left for filter %s (%d filters): %w", f, len(filters), sky.ErrExhaustedPalette)
			}
			var name string
			name, palette = palette[0], palette[1:]

			c, err := ecolor.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %v: %w", f, err, sky.ErrInvalidLayerParameter)
			}
			if !used[c.Hex()] {
				chosen = c
			}
		}

		used[chosen.Hex()] = true
		out = append(out, Assignment{Filter: f, Color: chosen})
	}

	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
