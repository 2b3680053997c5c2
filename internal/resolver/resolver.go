package resolver

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/pkg/autobind"
)

// Stats counts the outcome of one resolve pass
type Stats struct {
	Added     int
	Skipped   int
	Unmatched int
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Added += other.Added
	s.Skipped += other.Skipped
	s.Unmatched += other.Unmatched
}

// String returns a one-line summary
func (s Stats) String() string {
	return fmt.Sprintf("added=%d skipped=%d unmatched=%d", s.Added, s.Skipped, s.Unmatched)
}

// Resolve walks root depth-first, including root itself, and appends a
// binding entry to owner for every node whose name matches a suffix rule and
// that carries the rule's component. Rules are tried in order; the first rule
// that matches and has its component present wins. Entries already targeting
// a found component are counted as skipped, so repeated runs are idempotent.
//
// Entry paths are relative to owner's node; root is expected to be that node
// or one of its descendants.
func Resolve(root autobind.Node, owner *autobind.Owner, rs *rules.RuleSet) (Stats, error) {
	var stats Stats
	if rs == nil || len(rs.SuffixRules) == 0 {
		return stats, errors.NewConfigError("cannot resolve bindings without suffix rules").
			WithField("suffix_rules")
	}
	if owner == nil || root == nil {
		return stats, errors.New(errors.BindingFailureCode, "resolve needs an owner and a root node")
	}

	prefix, ok := pathFromOwner(owner.Node(), root)
	if !ok {
		return stats, errors.Newf(errors.BindingFailureCode, "node '%s' is not below owner '%s'", root.Name(), owner.ClassName())
	}

	taken := make(map[string]bool, len(owner.Bindings))
	for _, entry := range owner.Bindings {
		taken[entry.FieldName] = true
	}

	autobind.Walk(root, func(node autobind.Node, relPath string) {
		name := utils.SanitizeIdentifier(node.Name())
		matchedAny := false

		for _, rule := range rs.SuffixRules {
			if !rule.Matches(name) {
				continue
			}
			matchedAny = true

			component := autobind.FindComponent(node, rule.ComponentType)
			if component == nil {
				continue
			}

			if owner.IsBound(component) {
				stats.Skipped++
				return
			}

			field := uniqueName(FieldName(name, rule.Suffix), taken)
			taken[field] = true
			owner.Bindings = append(owner.Bindings, autobind.BindingEntry{
				FieldName:    field,
				Target:       component,
				DeclaredType: rule.ComponentType,
				Path:         joinPaths(prefix, relPath),
			})
			stats.Added++
			return
		}

		if matchedAny {
			stats.Unmatched++
		}
	})

	return stats, nil
}

// FieldName strips suffix from name and lower-cases the first letter. When
// nothing usable remains the whole name is used instead.
func FieldName(name, suffix string) string {
	base := strings.TrimSuffix(name, suffix)
	field := utils.ToLowerCamel(base)
	if !usableField(field) {
		field = utils.ToLowerCamel(name)
	}
	if !usableField(field) {
		field = "field" + utils.ToUpperCamel(name)
	}
	return field
}

func usableField(field string) bool {
	return field != "" && field != "_" && utils.IsValidIdentifier(field) && !token.IsKeyword(field)
}

// uniqueName appends 2, 3, ... until name is not taken
func uniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

func pathFromOwner(ownerNode, root autobind.Node) (string, bool) {
	if ownerNode == nil {
		return "", false
	}
	found, ok := "", false
	autobind.Walk(ownerNode, func(node autobind.Node, relPath string) {
		if !ok && node == root {
			found, ok = relPath, true
		}
	})
	return found, ok
}

func joinPaths(prefix, relPath string) string {
	switch {
	case prefix == "":
		return relPath
	case relPath == "":
		return prefix
	default:
		return prefix + "/" + relPath
	}
}

// AddOwnerComponents binds the components on the owner's own node, except
// the owner itself and generated instances. Field names are the lower-camel
// type names. It returns the number of entries added.
func AddOwnerComponents(owner *autobind.Owner) int {
	taken := make(map[string]bool, len(owner.Bindings))
	for _, entry := range owner.Bindings {
		taken[entry.FieldName] = true
	}

	added := 0
	for _, component := range owner.Node().Components() {
		if component == nil || component == autobind.Component(owner) {
			continue
		}
		if _, generated := component.(autobind.Bindable); generated {
			continue
		}
		if owner.IsBound(component) {
			continue
		}

		typ := component.ComponentType()
		field := uniqueName(FieldName(typ.Name, ""), taken)
		taken[field] = true
		owner.Bindings = append(owner.Bindings, autobind.BindingEntry{
			FieldName:    field,
			Target:       component,
			DeclaredType: typ,
		})
		added++
	}
	return added
}

// OwnerResult is the outcome for one owner of a batch
type OwnerResult struct {
	Owner *autobind.Owner
	Stats Stats
	Err   error
}

// BatchResult aggregates ResolveAll
type BatchResult struct {
	Total   Stats
	Owners  []OwnerResult
	Skipped []string // owners in Manual mode
}

// Err collects the per-owner errors, nil when there are none
func (b BatchResult) Err() error {
	multi := errors.NewMultipleErrors()
	for _, result := range b.Owners {
		if result.Err == nil {
			continue
		}
		if be, ok := result.Err.(errors.BindError); ok {
			multi.Add(be)
			continue
		}
		multi.Add(errors.Wrap(errors.BindingFailureCode, "resolve "+result.Owner.ClassName(), result.Err))
	}
	return multi.ErrOrNil()
}

// ResolveAll resolves every owner from its own node. Owners in Manual mode
// are left alone. A missing rule set fails the whole batch before any owner
// is touched; other errors are recorded per owner.
func ResolveAll(owners []*autobind.Owner, rs *rules.RuleSet) (BatchResult, error) {
	var result BatchResult
	if rs == nil || len(rs.SuffixRules) == 0 {
		return result, errors.NewConfigError("cannot resolve bindings without suffix rules").
			WithField("suffix_rules")
	}

	for _, owner := range owners {
		if owner == nil {
			continue
		}
		if !owner.Mode.UsesSuffixRules() {
			result.Skipped = append(result.Skipped, owner.ClassName())
			continue
		}

		stats, err := Resolve(owner.Node(), owner, rs)
		result.Owners = append(result.Owners, OwnerResult{Owner: owner, Stats: stats, Err: err})
		result.Total.Add(stats)
	}
	return result, nil
}
