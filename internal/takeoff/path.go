package takeoff

import (
	"strings"

	"github.com/kuperiu/bimsyncManager/internal/model"
)

// Path locates a value inside a nested product record, one key per segment.
type Path []string

// ParsePath splits a dotted path such as "attributes.Name.value".
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, "."))
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Resolve walks the path through record. Any missing key, null value or
// non-object intermediate resolves to null; Resolve never fails.
func (p Path) Resolve(record interface{}) model.Value {
	current := record
	for _, segment := range p {
		next, ok := lookup(current, segment)
		if !ok || next == nil {
			return model.NullValue()
		}
		current = next
	}
	return model.ValueOf(current)
}

func lookup(container interface{}, key string) (interface{}, bool) {
	switch c := container.(type) {
	case *model.Record:
		return c.Get(key)
	case map[string]interface{}:
		v, ok := c[key]
		return v, ok
	default:
		return nil, false
	}
}
