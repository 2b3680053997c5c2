// Package widgets provides the stock component types the default naming
// rules bind to.
package widgets

import "github.com/toyz/autobind/pkg/autobind"

const importPath = "github.com/toyz/autobind/pkg/autobind/widgets"

var (
	ButtonType     = autobind.TypeRef{Path: importPath, Name: "Button"}
	TextType       = autobind.TypeRef{Path: importPath, Name: "Text"}
	ImageType      = autobind.TypeRef{Path: importPath, Name: "Image"}
	ToggleType     = autobind.TypeRef{Path: importPath, Name: "Toggle"}
	SliderType     = autobind.TypeRef{Path: importPath, Name: "Slider"}
	ScrollRectType = autobind.TypeRef{Path: importPath, Name: "ScrollRect"}
	InputFieldType = autobind.TypeRef{Path: importPath, Name: "InputField"}
)

// Button is a clickable widget
type Button struct {
	Label   string
	OnClick func()
}

func (*Button) ComponentType() autobind.TypeRef { return ButtonType }

// Click invokes OnClick when set
func (b *Button) Click() {
	if b.OnClick != nil {
		b.OnClick()
	}
}

// Text displays a string
type Text struct {
	Value string
}

func (*Text) ComponentType() autobind.TypeRef { return TextType }

// Image displays a sprite by name
type Image struct {
	Sprite string
}

func (*Image) ComponentType() autobind.TypeRef { return ImageType }

// Toggle is an on/off switch
type Toggle struct {
	On bool
}

func (*Toggle) ComponentType() autobind.TypeRef { return ToggleType }

// Slider holds a value in [Min, Max]
type Slider struct {
	Min, Max, Value float64
}

func (*Slider) ComponentType() autobind.TypeRef { return SliderType }

// SetValue clamps v into range
func (s *Slider) SetValue(v float64) {
	switch {
	case v < s.Min:
		v = s.Min
	case v > s.Max:
		v = s.Max
	}
	s.Value = v
}

// ScrollRect is a scrollable viewport
type ScrollRect struct {
	Horizontal, Vertical bool
}

func (*ScrollRect) ComponentType() autobind.TypeRef { return ScrollRectType }

// InputField is an editable text box
type InputField struct {
	Text        string
	Placeholder string
}

func (*InputField) ComponentType() autobind.TypeRef { return InputFieldType }

// New creates the stock widget for t. The bool is false for unknown types.
func New(t autobind.TypeRef) (autobind.Component, bool) {
	switch t {
	case ButtonType:
		return &Button{}, true
	case TextType:
		return &Text{}, true
	case ImageType:
		return &Image{}, true
	case ToggleType:
		return &Toggle{}, true
	case SliderType:
		return &Slider{Max: 1}, true
	case ScrollRectType:
		return &ScrollRect{Vertical: true}, true
	case InputFieldType:
		return &InputField{}, true
	}
	return nil, false
}

// Factory creates stock widgets and falls back to a BasicComponent for any
// other type
func Factory(t autobind.TypeRef) autobind.Component {
	if c, ok := New(t); ok {
		return c
	}
	return &autobind.BasicComponent{Type: t}
}
