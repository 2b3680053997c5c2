package cli

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Filter attributes
const (
	AttributePath  = "path"
	AttributeClass = "class"
	AttributeScene = "scene"
)

type ownerPattern struct {
	key     string
	negated bool
	glob    glob.Glob
}

// OwnerFilter selects owners by glob patterns. A pattern is matched against
// the owner node path ("Root/Menus/*"), or against another attribute when
// written "class=Login*" or "scene=scenes/**". A leading "!" excludes.
type OwnerFilter struct {
	include []ownerPattern
	exclude []ownerPattern
}

// NewOwnerFilter compiles patterns. No patterns match every owner.
func NewOwnerFilter(patterns []string) (*OwnerFilter, error) {
	f := &OwnerFilter{}
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		p := ownerPattern{key: AttributePath}
		value := raw
		if strings.HasPrefix(value, "!") {
			p.negated = true
			value = value[1:]
		}
		if key, rest, found := strings.Cut(value, "="); found {
			switch key {
			case AttributePath, AttributeClass, AttributeScene:
				p.key, value = key, rest
			default:
				return nil, fmt.Errorf("owner filter '%s': unknown attribute '%s'", raw, key)
			}
		}

		compiled, err := glob.Compile(value, '/')
		if err != nil {
			return nil, fmt.Errorf("owner filter '%s': %w", raw, err)
		}
		p.glob = compiled

		if p.negated {
			f.exclude = append(f.exclude, p)
		} else {
			f.include = append(f.include, p)
		}
	}
	return f, nil
}

// Match reports whether ref passes the filter
func (f *OwnerFilter) Match(ref OwnerRef) bool {
	if f == nil {
		return true
	}
	for _, p := range f.exclude {
		if p.match(ref) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if p.match(ref) {
			return true
		}
	}
	return false
}

// Empty reports whether the filter has no patterns
func (f *OwnerFilter) Empty() bool {
	return f == nil || len(f.include)+len(f.exclude) == 0
}

func (p ownerPattern) match(ref OwnerRef) bool {
	switch p.key {
	case AttributeClass:
		return p.glob.Match(ref.Owner.ClassName())
	case AttributeScene:
		return p.glob.Match(ref.Document.Name)
	default:
		return p.glob.Match(ref.Path)
	}
}
