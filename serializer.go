package edgehttp

import "encoding/json"

// Serializable lets a user-defined type participate in body
// serialization without the dispatcher needing to know its shape. Types
// that don't implement it fall back to JSON encoding.
type Serializable interface {
	SerializeText() (string, error)
}

// Deserializable is the inverse hook used by ConvertTo for user-defined
// path-variable and body types. Implemented on a pointer receiver so
// DeserializeText can populate the receiver in place.
type Deserializable interface {
	DeserializeText(text string) error
}

// Serialize produces the textual form of value used as a wire response
// body. Primitive scalars and strings use their natural base-10/verbatim
// form; a type implementing Serializable is asked directly; anything
// else falls back to JSON, the reference encoding the core does not
// mandate but that every demo handler in this module relies on.
func Serialize[T any](value T) (string, error) {
	if s, ok := any(value).(Serializable); ok {
		return s.SerializeText()
	}
	if text, ok, err := serializePrimitive(value); ok {
		return text, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func serializePrimitive[T any](value T) (string, bool, error) {
	switch v := any(value).(type) {
	case Unit:
		_ = v
		return "", true, nil
	case string:
		return v, true, nil
	case Char:
		return string(rune(v)), true, nil
	case bool:
		if v {
			return "true", true, nil
		}
		return "false", true, nil
	case int:
		return formatInt(int64(v)), true, nil
	case int8:
		return formatInt(int64(v)), true, nil
	case int16:
		return formatInt(int64(v)), true, nil
	case int32:
		return formatInt(int64(v)), true, nil
	case int64:
		return formatInt(v), true, nil
	case uint:
		return formatUint(uint64(v)), true, nil
	case uint8:
		return formatUint(uint64(v)), true, nil
	case uint16:
		return formatUint(uint64(v)), true, nil
	case uint32:
		return formatUint(uint64(v)), true, nil
	case uint64:
		return formatUint(v), true, nil
	case float32:
		return formatFloat(float64(v), 32), true, nil
	case float64:
		return formatFloat(v, 64), true, nil
	default:
		return "", false, nil
	}
}
