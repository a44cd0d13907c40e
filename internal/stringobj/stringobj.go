// Package stringobj aids in writing String methods for objects
// with a JSON-like output.
package stringobj

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Builder builds "{key: value, ...}" strings,
// skipping attributes with zero values.
// Attributes are sorted by name.
type Builder struct {
	attrs []string
}

// Put adds the given attribute-value pair to the builder,
// unless the value is nil or a zero value.
func (b *Builder) Put(name string, value any) {
	if value == nil || reflect.ValueOf(value).IsZero() {
		return
	}
	b.attrs = append(b.attrs, fmt.Sprintf("%s: %v", name, value))
}

// String returns the final string representation.
func (b *Builder) String() string {
	attrs := slices.Clone(b.attrs)
	slices.Sort(attrs)
	return "{" + strings.Join(attrs, ", ") + "}"
}
