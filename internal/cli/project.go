package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/pkg/autobind"
	"github.com/toyz/autobind/pkg/autobind/host"
	"github.com/toyz/autobind/pkg/autobind/scene"
)

// OwnerRef locates an owner inside a loaded project
type OwnerRef struct {
	Document *scene.Document
	Owner    *autobind.Owner
	Path     string // owner node path inside the document
	ID       string
}

// Project is the working set of one CLI invocation: the rule set, the scene
// documents with their sidecar bindings, and the owner directory
type Project struct {
	Config       Config
	Rules        *rules.RuleSet
	RulesCreated bool
	Documents    []*scene.Document
	Directory    *scene.Directory

	files       map[*scene.Document]string
	diagnostics *utils.DiagnosticSystem
}

// OpenProject loads the rule set (creating it with defaults when absent)
// and every scene named by cfg
func OpenProject(cfg Config, diagnostics *utils.DiagnosticSystem) (*Project, error) {
	cfg = cfg.withDefaults()
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}

	p := &Project{
		Config:      cfg,
		files:       make(map[*scene.Document]string),
		diagnostics: diagnostics,
	}

	rulesPath := cfg.RulesPath()
	rs, created, err := rules.LoadOrCreate(rulesPath)
	if err != nil {
		return nil, err
	}
	p.Rules, p.RulesCreated = rs, created
	if created {
		diagnostics.Info("created %s with the default rules", rulesPath)
	}

	files, err := NewDirectoryScanner().ScanScenes(cfg.Root, cfg.Scenes)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		doc, err := p.loadScene(file)
		if err != nil {
			return nil, err
		}
		p.Documents = append(p.Documents, doc)
		p.files[doc] = file
	}

	p.Directory = scene.NewDirectory(p.Documents...)
	diagnostics.Verbose("loaded %d scene(s), %d owner(s)", len(p.Documents), len(p.Directory.IDs()))
	return p, nil
}

// loadScene names the document after its root-relative path so owner ids
// do not depend on the working directory
func (p *Project) loadScene(file string) (*scene.Document, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", file, err)
	}

	name := file
	if rel, err := filepath.Rel(p.Config.Root, file); err == nil {
		name = filepath.ToSlash(rel)
	}

	doc, err := scene.Load(name, src)
	if err != nil {
		return nil, err
	}

	sidecar, err := scene.LoadBindings(scene.SidecarPath(file))
	if err != nil {
		return nil, err
	}
	result := scene.Attach(doc, sidecar)
	for _, orphan := range result.Orphans {
		p.diagnostics.Warn("%s: bindings for '%s' have no owner in the scene", name, orphan)
	}
	if result.Unresolved > 0 {
		p.diagnostics.Warn("%s: %d binding(s) no longer resolve to a component", name, result.Unresolved)
	}
	return doc, nil
}

// Owners returns the owners accepted by filter in document order
func (p *Project) Owners(filter *OwnerFilter) []OwnerRef {
	var refs []OwnerRef
	for _, doc := range p.Documents {
		for _, owner := range doc.Owners() {
			ref := OwnerRef{
				Document: doc,
				Owner:    owner,
				Path:     doc.OwnerPath(owner),
				ID:       p.Directory.IDOf(owner),
			}
			if filter.Match(ref) {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

// SceneFile returns the file doc was loaded from
func (p *Project) SceneFile(doc *scene.Document) string {
	return p.files[doc]
}

// SaveBindings writes the sidecar of every document owning one of refs
func (p *Project) SaveBindings(refs []OwnerRef) error {
	saved := make(map[*scene.Document]bool)
	for _, ref := range refs {
		if saved[ref.Document] {
			continue
		}
		saved[ref.Document] = true

		path := scene.SidecarPath(p.files[ref.Document])
		if err := scene.SaveBindings(path, ref.Document); err != nil {
			return err
		}
		p.diagnostics.Verbose("saved %s", path)
	}
	return nil
}

// Session wires the scheduler of this project to its prefs file and build lock
func (p *Project) Session() (*host.Session, error) {
	return host.NewSession(host.SessionConfig{
		Root:      p.Config.Root,
		PrefsPath: p.Config.PrefsPath(),
		Identity:  p.Directory,
		Logger:    p.diagnostics,
	})
}

// OwnersOf strips refs down to their owners
func OwnersOf(refs []OwnerRef) []*autobind.Owner {
	owners := make([]*autobind.Owner, len(refs))
	for i, ref := range refs {
		owners[i] = ref.Owner
	}
	return owners
}
