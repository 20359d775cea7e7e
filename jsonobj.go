package edgehttp

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// JsonObject is a handler-author convenience for reading fields out of a
// request body without committing to a struct. It parses a JSON object
// byte-by-byte into raw field slices, deferring type conversion until a
// GetX call, the same streaming-parser shape the teacher's pilot-json
// package uses, retargeted to this module's error taxonomy.
type JsonObject struct {
	data map[string][]byte
}

// NewJsonObject returns an empty JsonObject ready for Parse.
func NewJsonObject() *JsonObject {
	return &JsonObject{data: make(map[string][]byte)}
}

// ParseJsonObject parses raw into a JsonObject.
func ParseJsonObject(raw []byte) (*JsonObject, error) {
	obj := NewJsonObject()
	if err := obj.Parse(raw); err != nil {
		return nil, err
	}
	return obj, nil
}

// Parse loads raw's top-level fields into the object. raw must be a
// JSON object; nested objects/arrays are kept as raw byte slices until
// a GetObject/GetArray call descends into them.
func (o *JsonObject) Parse(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	if raw[0] != '{' {
		return NewInvalidValueError("", string(raw), "JSON object")
	}

	i := 0
	quote := false
	curlyDelim := 0
	squareDelim := 0
	for i < len(raw) {
		skipThrough(raw, &i, '"')
		keyStart := i
		skipUntil(raw, &i, '"')
		keyEnd := i
		skipToValue(raw, &i)
		valueStart := i
		for i < len(raw) {
			if i > 0 && raw[i-1] != '\\' && raw[i] == '"' {
				quote = !quote
			}
			if !quote && raw[i] == '{' {
				curlyDelim++
			}
			if !quote && raw[i] == '}' {
				curlyDelim--
			}
			if !quote && raw[i] == '[' {
				squareDelim++
			}
			if !quote && raw[i] == ']' {
				squareDelim--
			}
			if !quote && curlyDelim <= 0 && squareDelim <= 0 && (raw[i] == ',' || raw[i] == '}') {
				break
			}
			i++
		}
		valueEnd := i
		o.data[string(raw[keyStart:keyEnd])] = trimWhitespace(raw[valueStart:valueEnd])
		i++
	}
	return nil
}

// GetString returns the string at key, stripping the surrounding quotes.
func (o *JsonObject) GetString(key string) (string, error) {
	val, ok := o.data[key]
	if !ok || len(val) < 2 {
		return "", NewInvalidValueError(key, "", "missing")
	}
	return string(val[1 : len(val)-1]), nil
}

func (o *JsonObject) GetInt32(key string) (int32, error) {
	val, ok := o.data[key]
	if !ok {
		return 0, NewInvalidValueError(key, "", "missing")
	}
	n, err := strconv.ParseInt(string(val), 10, 32)
	if err != nil {
		return 0, NewInvalidValueError(key, string(val), "int32")
	}
	return int32(n), nil
}

func (o *JsonObject) GetInt64(key string) (int64, error) {
	val, ok := o.data[key]
	if !ok {
		return 0, NewInvalidValueError(key, "", "missing")
	}
	n, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return 0, NewInvalidValueError(key, string(val), "int64")
	}
	return n, nil
}

func (o *JsonObject) GetFloat32(key string) (float32, error) {
	val, ok := o.data[key]
	if !ok {
		return 0, NewInvalidValueError(key, "", "missing")
	}
	f, err := strconv.ParseFloat(string(val), 32)
	if err != nil {
		return 0, NewInvalidValueError(key, string(val), "float32")
	}
	return float32(f), nil
}

func (o *JsonObject) GetFloat64(key string) (float64, error) {
	val, ok := o.data[key]
	if !ok {
		return 0, NewInvalidValueError(key, "", "missing")
	}
	f, err := strconv.ParseFloat(string(val), 64)
	if err != nil {
		return 0, NewInvalidValueError(key, string(val), "float64")
	}
	return f, nil
}

func (o *JsonObject) GetBool(key string) (bool, error) {
	val, ok := o.data[key]
	if !ok {
		return false, NewInvalidValueError(key, "", "missing")
	}
	b, err := strconv.ParseBool(string(val))
	if err != nil {
		return false, NewInvalidValueError(key, string(val), "bool")
	}
	return b, nil
}

func (o *JsonObject) GetObject(key string) (*JsonObject, error) {
	val, ok := o.data[key]
	if !ok {
		return nil, NewInvalidValueError(key, "", "missing")
	}
	return ParseJsonObject(val)
}

func (o *JsonObject) GetArray(key string) (*JsonArray, error) {
	val, ok := o.data[key]
	if !ok {
		return nil, NewInvalidValueError(key, "", "missing")
	}
	return ParseJsonArray(val)
}

func (o *JsonObject) GetData(key string) ([]byte, error) {
	val, ok := o.data[key]
	if !ok {
		return nil, NewInvalidValueError(key, "", "missing")
	}
	return val, nil
}

func (o *JsonObject) GetTime(key string) (time.Time, error) {
	val, ok := o.data[key]
	if !ok || len(val) < 2 {
		return time.Time{}, NewInvalidValueError(key, "", "missing")
	}
	t, err := time.Parse(time.RFC3339, string(val[1:len(val)-1]))
	if err != nil {
		return time.Time{}, NewInvalidValueError(key, string(val), "time.RFC3339")
	}
	return t, nil
}

func (o *JsonObject) GetUUID(key string) (uuid.UUID, error) {
	val, ok := o.data[key]
	if !ok || len(val) < 2 {
		return uuid.UUID{}, NewInvalidValueError(key, "", "missing")
	}
	id, err := uuid.Parse(string(val[1 : len(val)-1]))
	if err != nil {
		return uuid.UUID{}, NewInvalidValueError(key, string(val), "uuid")
	}
	return id, nil
}
