package instrument

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Masked replaces the value of a masked field.
const Masked = "***"

// Masker hides values whose key matches a configured field name, case-insensitively.
// DefaultMaskFields are always included.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker builds a Masker from DefaultMaskFields plus fields.
func NewMasker(fields ...string) *Masker {
	keys := make(map[string]struct{}, len(DefaultMaskFields)+len(fields))
	for _, field := range append(append([]string{}, DefaultMaskFields...), fields...) {
		if field = strings.TrimSpace(strings.ToLower(field)); field != "" {
			keys[field] = struct{}{}
		}
	}

	return &Masker{keys: keys}
}

// Has reports whether key is masked.
func (m *Masker) Has(key string) bool {
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

// Value masks maps and slices recursively. Other values are returned as is.
func (m *Masker) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			if m.Has(k) {
				out[k] = Masked
				continue
			}
			out[k] = m.Value(v2)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, v2 := range val {
			if m.Has(k) {
				v2 = Masked
			}
			out[k] = v2
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v2 := range val {
			out[i] = m.Value(v2)
		}
		return out
	default:
		return v
	}
}

// JSON masks a JSON object or array. ok is false when payload is not JSON.
func (m *Masker) JSON(payload []byte) (masked any, ok bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return nil, false
	}

	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, false
	}

	return m.Value(v), true
}

func (m *Masker) attr(a slog.Attr) slog.Attr {
	if m.Has(a.Key) {
		return slog.String(a.Key, Masked)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			out = append(out, m.attr(ga))
		}
		a.Value = slog.GroupValue(out...)
	case slog.KindString:
		if v, ok := m.JSON([]byte(a.Value.String())); ok {
			if b, err := json.Marshal(v); err == nil {
				a.Value = slog.StringValue(string(b))
			}
		}
	case slog.KindAny:
		switch val := a.Value.Any().(type) {
		case map[string]any, map[string]string, []any:
			a.Value = slog.AnyValue(m.Value(val))
		case []byte:
			if v, ok := m.JSON(val); ok {
				a.Value = slog.AnyValue(v)
			}
		}
	}

	return a
}
