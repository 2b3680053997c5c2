package scene

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/utils/fileops"
	"github.com/toyz/autobind/pkg/autobind"
)

// SidecarSuffix replaces the scene file extension for its bindings file
const SidecarSuffix = ".bindings.yaml"

// BindingFile is the persisted form of every owner's entry list
type BindingFile struct {
	Owners []OwnerBindings `yaml:"owners"`
}

// OwnerBindings is the entry list of the owner at Path
type OwnerBindings struct {
	Path     string          `yaml:"path"`
	Class    string          `yaml:"class,omitempty"`
	Bindings []BindingRecord `yaml:"bindings"`
}

// BindingRecord is one entry; Path is relative to the owner node
type BindingRecord struct {
	Field string           `yaml:"field"`
	Path  string           `yaml:"path"`
	Type  autobind.TypeRef `yaml:"type"`
}

// AttachResult counts what Attach restored
type AttachResult struct {
	Owners     int
	Entries    int
	Unresolved int      // entries whose component could not be found
	Orphans    []string // sidecar owner paths missing from the document
}

// SidecarPath returns the bindings file for a scene file,
// e.g. "login.scene" -> "login.bindings.yaml"
func SidecarPath(scenePath string) string {
	return strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + SidecarSuffix
}

// Snapshot captures the entry lists of every owner in doc
func Snapshot(doc *Document) *BindingFile {
	file := &BindingFile{}
	for _, owner := range doc.Owners() {
		record := OwnerBindings{
			Path:     doc.OwnerPath(owner),
			Class:    owner.ClassName(),
			Bindings: make([]BindingRecord, 0, len(owner.Bindings)),
		}
		for _, entry := range owner.Bindings {
			record.Bindings = append(record.Bindings, BindingRecord{
				Field: entry.FieldName,
				Path:  entry.Path,
				Type:  entry.DeclaredType,
			})
		}
		file.Owners = append(file.Owners, record)
	}
	return file
}

// SaveBindings writes the sidecar for doc to path
func SaveBindings(path string, doc *Document) error {
	data, err := yaml.Marshal(Snapshot(doc))
	if err != nil {
		return errors.WrapFileSystemError("encode", path, err)
	}
	return fileops.NewFileOps().WriteFile(path, data)
}

// LoadBindings reads a sidecar. A missing file yields an empty BindingFile.
func LoadBindings(path string) (*BindingFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &BindingFile{}, nil
	}
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	file := &BindingFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, errors.WrapFileSystemError("parse", path, err)
	}
	return file, nil
}

// Attach replaces the entry lists of doc's owners with the sidecar records,
// resolving each record's path to the live component of its declared type.
// Records that no longer resolve are kept with a nil target so validation
// reports them.
func Attach(doc *Document, file *BindingFile) AttachResult {
	var result AttachResult
	for _, record := range file.Owners {
		owner := doc.FindOwner(record.Path)
		if owner == nil {
			result.Orphans = append(result.Orphans, record.Path)
			continue
		}

		entries := make([]autobind.BindingEntry, 0, len(record.Bindings))
		for _, rec := range record.Bindings {
			entry := autobind.BindingEntry{
				FieldName:    rec.Field,
				DeclaredType: rec.Type,
				Path:         rec.Path,
			}
			if node := autobind.FindNode(owner.Node(), rec.Path); node != nil {
				entry.Target = autobind.FindComponent(node, rec.Type)
			}
			if entry.Target == nil {
				result.Unresolved++
			}
			entries = append(entries, entry)
		}

		owner.Bindings = entries
		result.Owners++
		result.Entries += len(entries)
	}
	return result
}

// LoadWithBindings loads a scene file and attaches its sidecar
func LoadWithBindings(scenePath string, opts ...LoadOption) (*Document, AttachResult, error) {
	doc, err := LoadFile(scenePath, opts...)
	if err != nil {
		return nil, AttachResult{}, err
	}
	file, err := LoadBindings(SidecarPath(scenePath))
	if err != nil {
		return nil, AttachResult{}, err
	}
	return doc, Attach(doc, file), nil
}
