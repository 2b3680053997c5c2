package autobind

import "fmt"

var (
	buttonType = TypeRef{Path: "github.com/acme/ui/widgets", Name: "Button"}
	textType   = TypeRef{Path: "github.com/acme/ui/widgets", Name: "Text"}
	viewType   = TypeRef{Path: "github.com/acme/app/ui", Name: "LoginView"}
)

type testButton struct{ label string }

func (*testButton) ComponentType() TypeRef { return buttonType }

type testText struct{ value string }

func (*testText) ComponentType() TypeRef { return textType }

// loginView mirrors what the generator emits for an owner with a confirm
// button and a title text
type loginView struct {
	confirm *testButton
	title   *testText
	bound   int
}

func (*loginView) ComponentType() TypeRef { return viewType }

func (v *loginView) OnBound() { v.bound++ }

func (v *loginView) AutobindFields() FieldTable {
	return FieldTable{
		Field("confirm", buttonType, &v.confirm),
		Field("title", textType, &v.title),
	}
}

// loginScene builds Root{Panel{ConfirmButton, TitleLabel}} with an owner on Root
func loginScene() (*BasicNode, *Owner, *testButton, *testText) {
	button := &testButton{label: "OK"}
	text := &testText{value: "Welcome"}

	root := NewNode("Root")
	panel := root.Child("Panel")
	panel.Child("ConfirmButton", button)
	panel.Child("TitleLabel", text)

	owner := NewOwner(root, AutoSuffix)
	owner.CustomClassName = "LoginView"
	return root, owner, button, text
}

func boundLoginOwner() (*Owner, *testButton, *testText) {
	_, owner, button, text := loginScene()
	owner.Bindings = []BindingEntry{
		{FieldName: "confirm", Target: button, DeclaredType: buttonType, Path: "Panel/ConfirmButton"},
		{FieldName: "title", Target: text, DeclaredType: textType, Path: "Panel/TitleLabel"},
	}
	return owner, button, text
}

func newTestRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(viewType, func() Bindable { return &loginView{} })
	return registry
}

// memoryStore is an in-memory KeyValueStore counting writes
type memoryStore struct {
	values map[string]string
	writes int
	fail   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(key, defaultValue string) string {
	if v, ok := m.values[key]; ok {
		return v
	}
	return defaultValue
}

func (m *memoryStore) Set(key, value string) error {
	if m.fail != nil {
		return m.fail
	}
	m.writes++
	m.values[key] = value
	return nil
}

// manualDeferrer queues callbacks until Tick runs the current batch
type manualDeferrer struct {
	queue []func()
}

func (d *manualDeferrer) RunLater(fn func()) {
	d.queue = append(d.queue, fn)
}

func (d *manualDeferrer) Tick() int {
	batch := d.queue
	d.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

type switchReadiness struct{ busy bool }

func (r *switchReadiness) IsBusy() bool { return r.busy }

type recordingBinder struct {
	calls  []string
	result bool
}

func (b *recordingBinder) BindOne(owner *Owner) bool {
	b.calls = append(b.calls, owner.ClassName())
	return b.result
}

// mapIdentity hands out ids by class name
type mapIdentity struct {
	owners map[string]*Owner
}

func newMapIdentity(owners ...*Owner) *mapIdentity {
	ids := &mapIdentity{owners: make(map[string]*Owner)}
	for _, owner := range owners {
		ids.owners[ids.IDOf(owner)] = owner
	}
	return ids
}

func (m *mapIdentity) IDOf(owner *Owner) string {
	return fmt.Sprintf("scene#%s", owner.ClassName())
}

func (m *mapIdentity) ResolveID(id string) *Owner {
	return m.owners[id]
}
