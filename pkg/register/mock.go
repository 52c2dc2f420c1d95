package register

import (
	"context"
	"sync"
)

// Mock implements Transport over an in-memory control table for testing.
// Reads of unset addresses return 0.
type Mock struct {
	// Err, when set, is returned by every call instead of touching memory.
	Err error

	mu     sync.Mutex
	memory map[mockKey]int
	calls  []MockCall
}

type mockKey struct {
	id, addr int
}

// MockCall records one primitive invocation.
type MockCall struct {
	Method string // ReadByteAt, ReadWordAt, WriteByteAt or WriteWordAt
	ID     int
	Addr   int
	Value  int
}

// NewMock creates an empty mock transport.
func NewMock() *Mock {
	return &Mock{memory: make(map[mockKey]int)}
}

// Set stores a raw value without recording a call.
func (m *Mock) Set(id, addr, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memory[mockKey{id, addr}] = value
}

// Get returns a stored raw value without recording a call.
func (m *Mock) Get(id, addr int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.memory[mockKey{id, addr}]
}

// Calls returns a copy of every recorded call.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Writes returns only the recorded write calls.
func (m *Mock) Writes() []MockCall {
	var out []MockCall
	for _, c := range m.Calls() {
		if c.Method == "WriteByteAt" || c.Method == "WriteWordAt" {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps memory.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Mock) ReadByteAt(ctx context.Context, id, addr int) (int, error) {
	return m.read("ReadByteAt", id, addr)
}

func (m *Mock) ReadWordAt(ctx context.Context, id, addr int) (int, error) {
	return m.read("ReadWordAt", id, addr)
}

func (m *Mock) WriteByteAt(ctx context.Context, id, addr, value int) error {
	return m.write("WriteByteAt", id, addr, value)
}

func (m *Mock) WriteWordAt(ctx context.Context, id, addr, value int) error {
	return m.write("WriteWordAt", id, addr, value)
}

func (m *Mock) read(method string, id, addr int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, ID: id, Addr: addr})
	if m.Err != nil {
		return 0, m.Err
	}
	return m.memory[mockKey{id, addr}], nil
}

func (m *Mock) write(method string, id, addr, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, ID: id, Addr: addr, Value: value})
	if m.Err != nil {
		return m.Err
	}
	m.memory[mockKey{id, addr}] = value
	return nil
}
