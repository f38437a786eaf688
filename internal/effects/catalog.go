// Package effects holds the static catalog of effect definitions available to
// project clips. The catalog is a process-lifetime constant used for lookup
// and discovery; validating supplied parameters against a definition's schema
// is the caller's job.
package effects

import "clipforge/internal/media"

// ParameterKind describes the value type of an effect parameter.
type ParameterKind string

const (
	KindNumber ParameterKind = "number"
	KindString ParameterKind = "string"
	KindEnum   ParameterKind = "enum"
)

// ParameterSchema declares one parameter of an effect definition.
type ParameterSchema struct {
	Name    string        `json:"name"`
	Kind    ParameterKind `json:"type"`
	Default any           `json:"default,omitempty"`
	Min     *float64      `json:"min,omitempty"`
	Max     *float64      `json:"max,omitempty"`
	Options []string      `json:"options,omitempty"`
}

// Definition is one immutable catalog entry.
type Definition struct {
	Type        media.EffectType  `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []ParameterSchema `json:"parameters"`
}

func number(name string, def, min, max float64) ParameterSchema {
	return ParameterSchema{Name: name, Kind: KindNumber, Default: def, Min: &min, Max: &max}
}

func text(name, def string) ParameterSchema {
	return ParameterSchema{Name: name, Kind: KindString, Default: def}
}

func enum(name, def string, options ...string) ParameterSchema {
	return ParameterSchema{Name: name, Kind: KindEnum, Default: def, Options: options}
}

var catalog = map[media.EffectType][]Definition{
	media.EffectFilter: {
		{
			Type:        media.EffectFilter,
			Name:        "blur",
			Description: "Gaussian blur applied to the full frame",
			Parameters:  []ParameterSchema{number("radius", 8, 0, 64)},
		},
		{
			Type:        media.EffectFilter,
			Name:        "brightness",
			Description: "Adjust overall brightness",
			Parameters:  []ParameterSchema{number("value", 0, -1, 1)},
		},
		{
			Type:        media.EffectFilter,
			Name:        "contrast",
			Description: "Adjust contrast curve",
			Parameters:  []ParameterSchema{number("value", 0, -1, 1)},
		},
		{
			Type:        media.EffectFilter,
			Name:        "grayscale",
			Description: "Convert footage to grayscale",
		},
		{
			Type:        media.EffectFilter,
			Name:        "sepia",
			Description: "Apply sepia tone",
		},
	},
	media.EffectTransition: {
		{
			Type:        media.EffectTransition,
			Name:        "fade",
			Description: "Cross-fade between clips",
			Parameters:  []ParameterSchema{number("duration", 0.5, 0.1, 5)},
		},
		{
			Type:        media.EffectTransition,
			Name:        "slide",
			Description: "Slide-in transition",
			Parameters: []ParameterSchema{
				enum("direction", "left", "left", "right", "up", "down"),
				number("duration", 0.5, 0.1, 5),
			},
		},
		{
			Type:        media.EffectTransition,
			Name:        "wipe",
			Description: "Linear wipe transition",
			Parameters: []ParameterSchema{
				enum("direction", "left", "left", "right", "up", "down"),
				number("duration", 0.4, 0.1, 5),
			},
		},
	},
	media.EffectText: {
		{
			Type:        media.EffectText,
			Name:        "title",
			Description: "Large title overlay",
			Parameters: []ParameterSchema{
				text("text", "Title"),
				enum("position", "center", "top", "center", "bottom"),
				number("size", 48, 12, 120),
			},
		},
		{
			Type:        media.EffectText,
			Name:        "subtitle",
			Description: "Lower-thirds subtitle",
			Parameters: []ParameterSchema{
				text("text", "Subtitle"),
				enum("position", "bottom", "top", "center", "bottom"),
				number("size", 24, 10, 72),
			},
		},
	},
	media.EffectAudio: {
		{
			Type:        media.EffectAudio,
			Name:        "ducking",
			Description: "Auto-duck music under voiceover",
			Parameters: []ParameterSchema{
				number("threshold", -20, -60, 0),
				number("ratio", 0.5, 0.1, 1),
			},
		},
		{
			Type:        media.EffectAudio,
			Name:        "fade-audio",
			Description: "Fade audio in/out",
			Parameters:  []ParameterSchema{number("duration", 1, 0, 10)},
		},
	},
}

// List returns the full catalog grouped by effect type.
func List() map[media.EffectType][]Definition {
	out := make(map[media.EffectType][]Definition, len(catalog))
	for effectType, definitions := range catalog {
		out[effectType] = append([]Definition(nil), definitions...)
	}
	return out
}

// Find returns the definition matching the given type and name.
func Find(effectType media.EffectType, name string) (Definition, bool) {
	for _, definition := range catalog[effectType] {
		if definition.Name == name {
			return definition, true
		}
	}
	return Definition{}, false
}
