package encode

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cast"

	"github.com/conduit-lang/docxmlext/internal/metadata"
)

// Attributes appends an <attributes> element listing attrs to parent.
// Nothing is appended when no attribute has a type.
func (e *Encoder) Attributes(parent *etree.Element, attrs []metadata.AttributeInstance) {
	var container *etree.Element

	for _, attr := range attrs {
		if attr.Type == "" {
			continue
		}
		if container == nil {
			container = parent.CreateElement("attributes")
		}

		el := container.CreateElement("attribute")
		el.CreateAttr("type", attr.Type)

		names := e.ctorParamNames(attr)
		for i, a := range attr.Args {
			arg := el.CreateElement("arg")
			name := a.Name
			if name == "" && i < len(names) {
				name = names[i]
			}
			arg.CreateAttr("name", name)
			arg.CreateAttr("type", a.Type)
			arg.SetText(RenderValue(a.Value))
		}
		for _, a := range attr.Named {
			arg := el.CreateElement("namedarg")
			arg.CreateAttr("name", a.Name)
			arg.CreateAttr("type", a.Type)
			arg.SetText(RenderValue(a.Value))
		}
	}
}

// ctorParamNames returns the parameter names of the attribute type's
// constructor taking as many arguments as attr passes. It returns nil when
// every argument is already named or no such constructor is known.
func (e *Encoder) ctorParamNames(attr metadata.AttributeInstance) []string {
	missing := false
	for _, a := range attr.Args {
		if a.Name == "" {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	for _, ctor := range e.store.Constructors(e.store.Lookup(attr.Type)) {
		if len(ctor.Params) != len(attr.Args) {
			continue
		}
		names := make([]string, len(ctor.Params))
		for i, p := range ctor.Params {
			names[i] = p.Name
		}
		return names
	}
	return nil
}

// RenderValue renders an attribute argument value as element text.
// Booleans use the binary's "True"/"False" spelling and arrays are
// comma-joined.
func RenderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = RenderValue(item)
		}
		return strings.Join(parts, ",")
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = RenderValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
