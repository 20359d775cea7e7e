package edgehttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointTrieExactMatch(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/api/status"))

	result := trie.Search("/api/status")
	assert.True(t, result.Found)
	assert.Equal(t, "/api/status", result.Pattern)
	assert.Empty(t, result.Variables)
}

func TestEndpointTrieVariableCapture(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/api/user/{userId}"))

	result := trie.Search("/api/user/42")
	assert.True(t, result.Found)
	assert.Equal(t, "/api/user/{userId}", result.Pattern)
	assert.Equal(t, map[string]string{"userId": "42"}, result.Variables)
}

func TestEndpointTrieMultipleVariables(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/hello/{a}/{b}/{c}"))

	result := trie.Search("/hello/x/y/z")
	assert.True(t, result.Found)
	assert.Equal(t, map[string]string{"a": "x", "b": "y", "c": "z"}, result.Variables)
}

func TestEndpointTrieLiteralDominatesVariable(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/api/user/{userId}"))
	require.NoError(t, trie.Insert("/api/user/me"))

	result := trie.Search("/api/user/me")
	assert.True(t, result.Found)
	assert.Equal(t, "/api/user/me", result.Pattern)
	assert.Empty(t, result.Variables)
}

func TestEndpointTrieInsertionOrderAmongVariableSiblings(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/widgets/{id}/first"))
	require.NoError(t, trie.Insert("/widgets/{slug}/second"))

	result := trie.Search("/widgets/abc/first")
	assert.True(t, result.Found)
	assert.Equal(t, "/widgets/{id}/first", result.Pattern)
}

func TestEndpointTrieTrailingSlashRequiresNoBoundVariables(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/api/status/"))

	result := trie.Search("/api/status/")
	assert.True(t, result.Found)
	assert.Equal(t, "/api/status/", result.Pattern)

	trie2 := NewEndpointTrie()
	require.NoError(t, trie2.Insert("/api/user/{userId}/"))
	miss := trie2.Search("/api/user/42/")
	assert.False(t, miss.Found)
}

func TestEndpointTrieTrailingSlashMatchesRegisteredWithoutOne(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/xyz"))

	result := trie.Search("/xyz/")
	assert.True(t, result.Found)
	assert.Equal(t, "/xyz", result.Pattern)
	assert.Empty(t, result.Variables)
}

func TestEndpointTrieTrailingSlashMatchesItself(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/xyz/"))

	result := trie.Search("/xyz/")
	assert.True(t, result.Found)
	assert.Equal(t, "/xyz/", result.Pattern)
}

func TestEndpointTrieNoMatch(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/api/user/{userId}"))

	result := trie.Search("/api/orders/42")
	assert.False(t, result.Found)
	assert.Empty(t, result.Pattern)
}

func TestEndpointTrieInsertRejectsUnbalancedBraces(t *testing.T) {
	trie := NewEndpointTrie()
	err := trie.Insert("/api/{user")
	require.Error(t, err)
	var invalid *InvalidPatternError
	assert.ErrorAs(t, err, &invalid)
}

func TestEndpointTrieInsertRejectsDuplicateVariableName(t *testing.T) {
	trie := NewEndpointTrie()
	err := trie.Insert("/api/{id}/sub/{id}")
	require.Error(t, err)
	var invalid *InvalidPatternError
	assert.ErrorAs(t, err, &invalid)
}

func TestEndpointTrieInsertIsIdempotent(t *testing.T) {
	trie := NewEndpointTrie()
	require.NoError(t, trie.Insert("/api/status"))
	require.NoError(t, trie.Insert("/api/status"))

	result := trie.Search("/api/status")
	assert.True(t, result.Found)
}

func TestEndpointTrieIsEmpty(t *testing.T) {
	trie := NewEndpointTrie()
	assert.True(t, trie.IsEmpty())
	require.NoError(t, trie.Insert("/api/status"))
	assert.False(t, trie.IsEmpty())
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "root", path: "/", want: nil},
		{name: "single", path: "/hello", want: []string{"hello"}},
		{name: "multiple", path: "/hello/world", want: []string{"hello", "world"}},
		{name: "collapsed double slash", path: "/hello//world", want: []string{"hello", "world"}},
		{name: "trailing slash sentinel", path: "/hello/world/", want: []string{"hello", "world", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPath(tt.path))
		})
	}
}
