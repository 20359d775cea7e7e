package edgehttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestQueueFIFOOrder(t *testing.T) {
	q := NewRequestQueue()
	first := &Request{Path: "/a"}
	second := &Request{Path: "/b"}
	q.Enqueue(first)
	q.Enqueue(second)

	assert.Same(t, first, q.Dequeue())
	assert.Same(t, second, q.Dequeue())
	assert.Nil(t, q.Dequeue())
}

func TestRequestQueueEnqueueNilIsNoop(t *testing.T) {
	q := NewRequestQueue()
	q.Enqueue(nil)
	assert.True(t, q.IsEmpty())
}

func TestRequestQueueHasItems(t *testing.T) {
	q := NewRequestQueue()
	assert.False(t, q.HasItems())
	q.Enqueue(&Request{Path: "/a"})
	assert.True(t, q.HasItems())
}
