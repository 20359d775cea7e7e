package edgehttp

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Char is a single-character value distinct from a plain rune/int32, so
// ConvertTo can tell "single character" target types apart from
// ordinary 32-bit integers — a distinction the original template
// specialization made at compile time that a Go type switch cannot make
// across aliases of the same underlying type.
type Char rune

var boolFolder = cases.Fold()

// ConvertTo converts a raw path-variable (or body scalar) string to T,
// following the per-type rules: user-defined types delegate to
// Deserializable; textual types are URL-decoded and returned verbatim;
// booleans fold case before matching true/1/false/0; numeric types
// parse in base 10 and narrow to the declared width; Char takes the
// sole rune of a length-1 input, the zero rune for an empty input, or
// else parses as an integer and narrows.
func ConvertTo[T any](raw string) (T, error) {
	var out T
	if d, ok := any(&out).(Deserializable); ok {
		if err := d.DeserializeText(raw); err != nil {
			return out, NewInvalidValueError("", raw, "user-defined type")
		}
		return out, nil
	}

	switch ptr := any(&out).(type) {
	case *string:
		*ptr = urlDecode(raw)
	case *Char:
		decoded := urlDecode(raw)
		switch len(decoded) {
		case 0:
			*ptr = 0
		case 1:
			*ptr = Char(decoded[0])
		default:
			n, err := strconv.ParseInt(decoded, 10, 32)
			if err != nil {
				return out, NewInvalidValueError("", raw, "Char")
			}
			*ptr = Char(n)
		}
	case *bool:
		folded := boolFolder.String(strings.TrimSpace(urlDecode(raw)))
		switch folded {
		case "true", "1":
			*ptr = true
		case "false", "0":
			*ptr = false
		default:
			return out, NewInvalidValueError("", raw, "bool")
		}
	case *int:
		n, err := strconv.ParseInt(urlDecode(raw), 10, 64)
		if err != nil {
			return out, NewInvalidValueError("", raw, "int")
		}
		*ptr = int(n)
	case *int8:
		n, err := strconv.ParseInt(urlDecode(raw), 10, 8)
		if err != nil {
			return out, NewInvalidValueError("", raw, "int8")
		}
		*ptr = int8(n)
	case *int16:
		n, err := strconv.ParseInt(urlDecode(raw), 10, 16)
		if err != nil {
			return out, NewInvalidValueError("", raw, "int16")
		}
		*ptr = int16(n)
	case *int32:
		n, err := strconv.ParseInt(urlDecode(raw), 10, 32)
		if err != nil {
			return out, NewInvalidValueError("", raw, "int32")
		}
		*ptr = int32(n)
	case *int64:
		n, err := strconv.ParseInt(urlDecode(raw), 10, 64)
		if err != nil {
			return out, NewInvalidValueError("", raw, "int64")
		}
		*ptr = n
	case *uint:
		n, err := strconv.ParseUint(urlDecode(raw), 10, 64)
		if err != nil {
			return out, NewInvalidValueError("", raw, "uint")
		}
		*ptr = uint(n)
	case *uint8:
		n, err := strconv.ParseUint(urlDecode(raw), 10, 8)
		if err != nil {
			return out, NewInvalidValueError("", raw, "uint8")
		}
		*ptr = uint8(n)
	case *uint16:
		n, err := strconv.ParseUint(urlDecode(raw), 10, 16)
		if err != nil {
			return out, NewInvalidValueError("", raw, "uint16")
		}
		*ptr = uint16(n)
	case *uint32:
		n, err := strconv.ParseUint(urlDecode(raw), 10, 32)
		if err != nil {
			return out, NewInvalidValueError("", raw, "uint32")
		}
		*ptr = uint32(n)
	case *uint64:
		n, err := strconv.ParseUint(urlDecode(raw), 10, 64)
		if err != nil {
			return out, NewInvalidValueError("", raw, "uint64")
		}
		*ptr = n
	case *float32:
		n, err := strconv.ParseFloat(urlDecode(raw), 32)
		if err != nil {
			return out, NewInvalidValueError("", raw, "float32")
		}
		*ptr = float32(n)
	case *float64:
		n, err := strconv.ParseFloat(urlDecode(raw), 64)
		if err != nil {
			return out, NewInvalidValueError("", raw, "float64")
		}
		*ptr = n
	default:
		return out, NewInvalidValueError("", raw, "unsupported type")
	}
	return out, nil
}

// PathVar converts the named variable out of a match's variable map,
// stamping the variable name onto any InvalidValueError produced.
func PathVar[T any](vars map[string]string, name string) (T, error) {
	raw, ok := vars[name]
	if !ok {
		var zero T
		return zero, NewInvalidValueError(name, "", "missing")
	}
	value, err := ConvertTo[T](raw)
	if err != nil {
		if ive, ok := err.(*InvalidValueError); ok {
			ive.Name = name
		}
		return value, err
	}
	return value, nil
}

// urlDecode walks text substituting %XX percent escapes with their byte
// and '+' with space; a malformed '%' (not followed by two hex digits)
// is kept literally rather than rejected.
func urlDecode(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '%':
			if i+2 < len(text) {
				if hi, okHi := hexVal(text[i+1]); okHi {
					if lo, okLo := hexVal(text[i+2]); okLo {
						b.WriteByte(byte(hi<<4 | lo))
						i += 2
						continue
					}
				}
			}
			b.WriteByte('%')
		case '+':
			b.WriteByte(' ')
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func formatInt(v int64) string    { return strconv.FormatInt(v, 10) }
func formatUint(v uint64) string  { return strconv.FormatUint(v, 10) }
func formatFloat(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}
