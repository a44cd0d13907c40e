package log

import "log/slog"

// OmitEmpty builds an attribute with the given constructor
// unless value is the zero value for its type.
// Zero values produce an empty attribute, which the logger skips.
//
//	log.OmitEmpty(slog.String, "output", path)
func OmitEmpty[T comparable](fn func(string, T) slog.Attr, name string, value T) slog.Attr {
	var zero T
	if value == zero {
		return slog.Attr{}
	}
	return fn(name, value)
}
