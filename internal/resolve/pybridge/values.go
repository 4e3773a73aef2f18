package pybridge

import (
	"github.com/tidwall/gjson"
)

const handleKey = "$handle"

// Ref is how a helper-side object travels on the wire.
type Ref struct {
	Handle int64 `json:"$handle"`
}

// handleOf extracts the handle from a {"$handle":H} value.
func handleOf(v gjson.Result) (int64, bool) {
	if !v.IsObject() {
		return 0, false
	}
	fields := v.Map()
	h, found := fields[handleKey]
	if !found || len(fields) != 1 || h.Type != gjson.Number {
		return 0, false
	}
	return h.Int(), true
}

// truthy applies Python truthiness to a decoded value: None, False, 0,
// empty strings and empty containers are false. Handles are true.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Float() != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		if v.IsArray() {
			return len(v.Array()) > 0
		}
		return len(v.Map()) > 0
	default:
		return false
	}
}

// elements returns the members of a list, or the values of a dict in
// document order. Resolve answers some listings as {"1": x, "2": y}.
func elements(v gjson.Result) []gjson.Result {
	if v.IsArray() {
		return v.Array()
	}
	if v.IsObject() {
		if _, isHandle := handleOf(v); isHandle {
			return []gjson.Result{v}
		}
		var out []gjson.Result
		v.ForEach(func(_, value gjson.Result) bool {
			out = append(out, value)
			return true
		})
		return out
	}
	return nil
}

func stringsOf(v gjson.Result) []string {
	items := elements(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

func stringMapOf(v gjson.Result) map[string]string {
	out := map[string]string{}
	if !v.IsObject() {
		return out
	}
	v.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}

// valueOf converts a decoded value to plain Go values, leaving handles as
// Ref.
func valueOf(v gjson.Result) any {
	if h, isHandle := handleOf(v); isHandle {
		return Ref{Handle: h}
	}
	if v.IsArray() {
		items := v.Array()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, valueOf(item))
		}
		return out
	}
	if v.IsObject() {
		out := map[string]any{}
		v.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = valueOf(value)
			return true
		})
		return out
	}
	return v.Value()
}
