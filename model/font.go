package model

import (
	"strings"
	"sync"
)

// Font identifies a font program used on a page
type Font struct {
	// Name is the base font name without a subset tag
	Name string
	// BaseFont is the name as written in the font dictionary
	BaseFont string
	Type3    bool
}

// FontFace is a font at a given size. Two faces are equal when they refer to
// the same Font and have the same size.
type FontFace struct {
	Font *Font
	Size float64
}

// FamilyName returns the font name, or "" for a zero face
func (f FontFace) FamilyName() string {
	if f.Font == nil {
		return ""
	}
	return f.Font.Name
}

// SameFamily reports whether both faces use fonts with the same name
func (f FontFace) SameFamily(other FontFace) bool {
	return f.FamilyName() == other.FamilyName()
}

// StripSubsetTag removes a six-letter subset prefix such as "ABCDEF+"
func StripSubsetTag(name string) string {
	if len(name) > 7 && name[6] == '+' {
		for i := 0; i < 6; i++ {
			if name[i] < 'A' || name[i] > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}

// FontRegistry interns fonts so that every font dictionary with the same
// base font name maps to one *Font.
type FontRegistry struct {
	mu    sync.Mutex
	fonts map[string]*Font
	order []*Font
}

// NewFontRegistry creates an empty registry
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{fonts: make(map[string]*Font)}
}

// Intern returns the font registered under baseFont, creating it if needed
func (r *FontRegistry) Intern(baseFont string, type3 bool) *Font {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := baseFont
	if type3 {
		key = "type3:" + baseFont
	}
	if f, ok := r.fonts[key]; ok {
		return f
	}
	f := &Font{
		Name:     strings.TrimSpace(StripSubsetTag(baseFont)),
		BaseFont: baseFont,
		Type3:    type3,
	}
	r.fonts[key] = f
	r.order = append(r.order, f)
	return f
}

// Fonts returns the registered fonts in registration order
func (r *FontRegistry) Fonts() []*Font {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Font, len(r.order))
	copy(out, r.order)
	return out
}
