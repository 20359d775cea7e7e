package edgehttp

import "sync"

// ResponseQueue holds two independently-mutexed FIFO lanes keyed by the
// originating transport's Source, so responses are always delivered
// back through the transport that produced the request.
type ResponseQueue struct {
	localMu    sync.Mutex
	localItems []WireResponse

	cloudMu    sync.Mutex
	cloudItems []WireResponse
}

// NewResponseQueue returns an empty ResponseQueue.
func NewResponseQueue() *ResponseQueue {
	return &ResponseQueue{}
}

// Enqueue routes resp to its lane by resp.Source. Any source other than
// LocalServer or CloudServer is silently dropped.
func (q *ResponseQueue) Enqueue(resp WireResponse) {
	switch resp.Source {
	case LocalServer:
		q.localMu.Lock()
		q.localItems = append(q.localItems, resp)
		q.localMu.Unlock()
	case CloudServer:
		q.cloudMu.Lock()
		q.cloudItems = append(q.cloudItems, resp)
		q.cloudMu.Unlock()
	}
}

// DequeueLocalResponse pops the head of the local lane, or (zero, false)
// if that lane is empty.
func (q *ResponseQueue) DequeueLocalResponse() (WireResponse, bool) {
	q.localMu.Lock()
	defer q.localMu.Unlock()
	if len(q.localItems) == 0 {
		return WireResponse{}, false
	}
	resp := q.localItems[0]
	q.localItems = q.localItems[1:]
	return resp, true
}

// DequeueCloudResponse pops the head of the cloud lane, or (zero, false)
// if that lane is empty.
func (q *ResponseQueue) DequeueCloudResponse() (WireResponse, bool) {
	q.cloudMu.Lock()
	defer q.cloudMu.Unlock()
	if len(q.cloudItems) == 0 {
		return WireResponse{}, false
	}
	resp := q.cloudItems[0]
	q.cloudItems = q.cloudItems[1:]
	return resp, true
}

// IsEmpty reports whether both lanes are empty.
func (q *ResponseQueue) IsEmpty() bool {
	q.localMu.Lock()
	localEmpty := len(q.localItems) == 0
	q.localMu.Unlock()

	q.cloudMu.Lock()
	cloudEmpty := len(q.cloudItems) == 0
	q.cloudMu.Unlock()

	return localEmpty && cloudEmpty
}

// HasItems reports whether either lane has at least one pending response.
func (q *ResponseQueue) HasItems() bool {
	return !q.IsEmpty()
}
