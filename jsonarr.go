package edgehttp

import (
	"strconv"

	"github.com/google/uuid"
)

// JsonArray is JsonObject's counterpart for top-level JSON arrays.
type JsonArray struct {
	data [][]byte
}

// NewJsonArray returns an empty JsonArray ready for Parse.
func NewJsonArray() *JsonArray {
	return &JsonArray{data: make([][]byte, 0)}
}

// ParseJsonArray parses raw into a JsonArray.
func ParseJsonArray(raw []byte) (*JsonArray, error) {
	arr := NewJsonArray()
	if err := arr.Parse(raw); err != nil {
		return nil, err
	}
	return arr, nil
}

// Parse loads raw's top-level elements into the array.
func (a *JsonArray) Parse(raw []byte) error {
	i := 0
	for {
		if i >= len(raw) {
			return NewInvalidValueError("", string(raw), "JSON array")
		}
		if raw[i] == '[' {
			i++
			break
		}
		i++
	}

	quote := false
	curlyDelim := 0
	squareDelim := 0
	for i < len(raw)-1 {
		valueStart := i
		for i < len(raw)-1 {
			if (i < 1 || raw[i-1] != '\\') && raw[i] == '"' {
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
			if !quote && curlyDelim <= 0 && squareDelim <= 0 && (raw[i] == ',' || raw[i] == ']') {
				break
			}
			i++
		}
		a.data = append(a.data, trimWhitespace(raw[valueStart:i]))
		i++
	}
	return nil
}

// Length returns the number of top-level elements.
func (a *JsonArray) Length() int { return len(a.data) }

func (a *JsonArray) at(index int) ([]byte, error) {
	if index < 0 || index >= len(a.data) {
		return nil, NewInvalidValueError(strconv.Itoa(index), "", "out of range")
	}
	return a.data[index], nil
}

func (a *JsonArray) GetString(index int) (string, error) {
	val, err := a.at(index)
	if err != nil {
		return "", err
	}
	if len(val) < 2 {
		return "", NewInvalidValueError(strconv.Itoa(index), string(val), "string")
	}
	return string(val[1 : len(val)-1]), nil
}

func (a *JsonArray) GetInt32(index int) (int32, error) {
	val, err := a.at(index)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(string(val), 10, 32)
	if perr != nil {
		return 0, NewInvalidValueError(strconv.Itoa(index), string(val), "int32")
	}
	return int32(n), nil
}

func (a *JsonArray) GetInt64(index int) (int64, error) {
	val, err := a.at(index)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(string(val), 10, 64)
	if perr != nil {
		return 0, NewInvalidValueError(strconv.Itoa(index), string(val), "int64")
	}
	return n, nil
}

func (a *JsonArray) GetFloat32(index int) (float32, error) {
	val, err := a.at(index)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(string(val), 32)
	if perr != nil {
		return 0, NewInvalidValueError(strconv.Itoa(index), string(val), "float32")
	}
	return float32(f), nil
}

func (a *JsonArray) GetFloat64(index int) (float64, error) {
	val, err := a.at(index)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(string(val), 64)
	if perr != nil {
		return 0, NewInvalidValueError(strconv.Itoa(index), string(val), "float64")
	}
	return f, nil
}

func (a *JsonArray) GetBool(index int) (bool, error) {
	val, err := a.at(index)
	if err != nil {
		return false, err
	}
	b, perr := strconv.ParseBool(string(val))
	if perr != nil {
		return false, NewInvalidValueError(strconv.Itoa(index), string(val), "bool")
	}
	return b, nil
}

func (a *JsonArray) GetUUID(index int) (uuid.UUID, error) {
	val, err := a.at(index)
	if err != nil {
		return uuid.UUID{}, err
	}
	if len(val) < 2 {
		return uuid.UUID{}, NewInvalidValueError(strconv.Itoa(index), string(val), "uuid")
	}
	id, perr := uuid.Parse(string(val[1 : len(val)-1]))
	if perr != nil {
		return uuid.UUID{}, NewInvalidValueError(strconv.Itoa(index), string(val), "uuid")
	}
	return id, nil
}

func (a *JsonArray) GetObject(index int) (*JsonObject, error) {
	val, err := a.at(index)
	if err != nil {
		return nil, err
	}
	return ParseJsonObject(val)
}

func (a *JsonArray) GetArray(index int) (*JsonArray, error) {
	val, err := a.at(index)
	if err != nil {
		return nil, err
	}
	return ParseJsonArray(val)
}

func (a *JsonArray) GetData(index int) ([]byte, error) {
	return a.at(index)
}
