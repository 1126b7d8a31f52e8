package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Widget is a rendering hint for UI consumers of the compiled schema.
type Widget string

const (
	WidgetDefault  Widget = "default"
	WidgetTextarea Widget = "textarea"
	WidgetHidden   Widget = "hidden"
	WidgetPassword Widget = "password"
	WidgetSelect   Widget = "select"
	WidgetDropdown Widget = "dropdown"
	WidgetRadio    Widget = "radio"
	WidgetCheckbox Widget = "checkbox"
	WidgetColor    Widget = "color"
	WidgetUpdown   Widget = "updown"
	WidgetRange    Widget = "range"
)

var knownWidgets = map[Widget]struct{}{
	WidgetDefault:  {},
	WidgetTextarea: {},
	WidgetHidden:   {},
	WidgetPassword: {},
	WidgetSelect:   {},
	WidgetDropdown: {},
	WidgetRadio:    {},
	WidgetCheckbox: {},
	WidgetColor:    {},
	WidgetUpdown:   {},
	WidgetRange:    {},
}

// ParseWidget resolves a widget name from the closed widget set.
func ParseWidget(name string) (Widget, error) {
	widget := Widget(strings.TrimSpace(name))
	if _, ok := knownWidgets[widget]; !ok {
		return "", fmt.Errorf("unknown widget %q", name)
	}
	return widget, nil
}

// UnmarshalYAML rejects widgets outside the closed set.
func (w *Widget) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: widget must be a scalar", node.Line)
	}
	widget, err := ParseWidget(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*w = widget
	return nil
}

// Annotations carries per-node display metadata.
type Annotations struct {
	Title       *string `yaml:"title"`
	Help        *string `yaml:"help"`
	Warning     *string `yaml:"warning"`
	Description *string `yaml:"description"`
	Widget      *Widget `yaml:"widget"`
}

// DisplayInformation is the widget-free subset of annotations attached to
// enumeration values.
type DisplayInformation struct {
	Title       *string `yaml:"title"`
	Help        *string `yaml:"help"`
	Warning     *string `yaml:"warning"`
	Description *string `yaml:"description"`
}

// WithTypeOverride applies the type-driven widget rule: text kinds always use
// the textarea widget, replacing whatever was authored.
// TODO: confirm with product whether an explicit widget on a text node should
// win; today it is silently discarded.
func (a Annotations) WithTypeOverride(spec TypeSpec) Annotations {
	if spec.Kind() == KindText {
		widget := WidgetTextarea
		a.Widget = &widget
	}
	return a
}

// Map applies fn to every text field, leaving the widget untouched.
func (a Annotations) Map(fn func(string) string) Annotations {
	a.Title = mapText(a.Title, fn)
	a.Help = mapText(a.Help, fn)
	a.Warning = mapText(a.Warning, fn)
	a.Description = mapText(a.Description, fn)
	return a
}

// Map applies fn to every text field.
func (d DisplayInformation) Map(fn func(string) string) DisplayInformation {
	d.Title = mapText(d.Title, fn)
	d.Help = mapText(d.Help, fn)
	d.Warning = mapText(d.Warning, fn)
	d.Description = mapText(d.Description, fn)
	return d
}

func mapText(value *string, fn func(string) string) *string {
	if value == nil || fn == nil {
		return value
	}
	out := fn(*value)
	return &out
}

// Text returns a pointer to a copy of value. Handy for literals in tests and
// builders.
func Text(value string) *string {
	return &value
}
