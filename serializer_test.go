package edgehttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clockTime struct {
	seconds int64
}

func (c clockTime) SerializeText() (string, error) {
	return "ts:" + formatInt(c.seconds), nil
}

type parsedFlag struct {
	on bool
}

func (p *parsedFlag) DeserializeText(text string) error {
	p.on = text == "on"
	return nil
}

func TestSerializePrimitives(t *testing.T) {
	s, err := Serialize("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	s, err = Serialize(int64(42))
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	s, err = Serialize(true)
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	s, err = Serialize(Unit{})
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestSerializeSerializableType(t *testing.T) {
	s, err := Serialize(clockTime{seconds: 9})
	require.NoError(t, err)
	assert.Equal(t, "ts:9", s)
}

func TestSerializeFallsBackToJSON(t *testing.T) {
	s, err := Serialize(greeting{Message: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi"}`, s)
}

func TestConvertToDeserializableType(t *testing.T) {
	v, err := ConvertTo[parsedFlag]("on")
	require.NoError(t, err)
	assert.True(t, v.on)
}
