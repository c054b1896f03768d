package sim

import (
	"sort"
	"sync"
)

type kind int

const (
	kindFloat kind = iota
	kindInt
	kindBytes
)

type dataref struct {
	kind   kind
	floats []float32
	ints   []int
	bytes  []byte
}

// WriteHook observes every local write to a numeric dataref.
type WriteHook func(name string, offset int, values []float64)

// Store is an in-memory dataref table. Every dataref is an array; scalars
// are arrays of length one. Floats and ints convert on access the way the
// simulator's typed accessors do.
type Store struct {
	mu    sync.RWMutex
	refs  map[string]*dataref
	hooks []WriteHook
}

func NewStore() *Store {
	return &Store{refs: make(map[string]*dataref)}
}

// DefineFloats declares a float array dataref initialized to values.
func (s *Store) DefineFloats(name string, values ...float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[name] = &dataref{kind: kindFloat, floats: append([]float32(nil), values...)}
}

// DefineInts declares an int array dataref initialized to values.
func (s *Store) DefineInts(name string, values ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[name] = &dataref{kind: kindInt, ints: append([]int(nil), values...)}
}

// DefineBytes declares a byte dataref such as an ICAO code.
func (s *Store) DefineBytes(name string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[name] = &dataref{kind: kindBytes, bytes: append([]byte(nil), value...)}
}

// Undefine removes a dataref; later reads see zero values.
func (s *Store) Undefine(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refs, name)
}

// OnWrite adds a hook called after local writes.
func (s *Store) OnWrite(h WriteHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Names lists every defined dataref in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.refs))
	for n := range s.refs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.refs[name]
	return ok
}

func (s *Store) Float(name string) float32 {
	var v [1]float32
	s.Floats(name, v[:], 0)
	return v[0]
}

func (s *Store) SetFloat(name string, v float32) {
	s.SetFloats(name, []float32{v}, 0)
}

func (s *Store) Int(name string) int {
	var v [1]int
	s.Ints(name, v[:], 0)
	return v[0]
}

func (s *Store) SetInt(name string, v int) {
	s.SetInts(name, []int{v}, 0)
}

func (s *Store) Floats(name string, dst []float32, offset int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.refs[name]
	if !ok || offset < 0 {
		return 0
	}
	switch ref.kind {
	case kindFloat:
		if offset >= len(ref.floats) {
			return 0
		}
		return copy(dst, ref.floats[offset:])
	case kindInt:
		n := 0
		for i := offset; i < len(ref.ints) && n < len(dst); i++ {
			dst[n] = float32(ref.ints[i])
			n++
		}
		return n
	}
	return 0
}

func (s *Store) SetFloats(name string, src []float32, offset int) {
	values := make([]float64, len(src))
	for i, v := range src {
		values[i] = float64(v)
	}
	s.write(name, offset, values)
}

func (s *Store) Ints(name string, dst []int, offset int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.refs[name]
	if !ok || offset < 0 {
		return 0
	}
	switch ref.kind {
	case kindInt:
		if offset >= len(ref.ints) {
			return 0
		}
		return copy(dst, ref.ints[offset:])
	case kindFloat:
		n := 0
		for i := offset; i < len(ref.floats) && n < len(dst); i++ {
			dst[n] = int(ref.floats[i])
			n++
		}
		return n
	}
	return 0
}

func (s *Store) SetInts(name string, src []int, offset int) {
	values := make([]float64, len(src))
	for i, v := range src {
		values[i] = float64(v)
	}
	s.write(name, offset, values)
}

func (s *Store) Bytes(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.refs[name]
	if !ok || ref.kind != kindBytes {
		return nil
	}
	return append([]byte(nil), ref.bytes...)
}

func (s *Store) write(name string, offset int, values []float64) {
	if !s.assign(name, offset, values) {
		return
	}
	s.mu.RLock()
	hooks := s.hooks
	s.mu.RUnlock()
	for _, h := range hooks {
		h(name, offset, values)
	}
}

// Mirror applies a value received from a remote simulator. It behaves like a
// local write but skips the write hooks, so mirrored values are not echoed.
func (s *Store) Mirror(name string, offset int, values []float64) {
	s.assign(name, offset, values)
}

func (s *Store) assign(name string, offset int, values []float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.refs[name]
	if !ok || offset < 0 {
		return false
	}
	switch ref.kind {
	case kindFloat:
		for i, v := range values {
			if offset+i >= len(ref.floats) {
				break
			}
			ref.floats[offset+i] = float32(v)
		}
	case kindInt:
		for i, v := range values {
			if offset+i >= len(ref.ints) {
				break
			}
			ref.ints[offset+i] = int(v)
		}
	default:
		return false
	}
	return true
}
