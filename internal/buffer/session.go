package buffer

import "fmt"

// Session is the process-wide registry of open buffers, keyed by
// unique name (spec.md §3: buffer names must be unique; macro buffers
// are named with the reserved leading character and excluded from the
// normal buffer-switch listing by default).
type Session struct {
	order  []*Buffer // creation order, preserved for "next/previous buffer"
	byName map[string]*Buffer
}

// NewSession creates an empty registry.
func NewSession() *Session {
	return &Session{byName: make(map[string]*Buffer)}
}

// Create adds a new buffer named name, returning an error if the name
// is already taken.
func (s *Session) Create(name string) (*Buffer, error) {
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("buffer %q already exists", name)
	}
	b := New(name)
	if IsMacroName(name) {
		b.Flags |= FlMacro
		b.Macro = &MacroExt{}
	}
	s.byName[name] = b
	s.order = append(s.order, b)
	return b, nil
}

// Lookup returns the buffer named name, or nil.
func (s *Session) Lookup(name string) *Buffer {
	return s.byName[name]
}

// Rename changes b's registered name, failing if newName is taken by a
// different buffer.
func (s *Session) Rename(b *Buffer, newName string) error {
	if existing, ok := s.byName[newName]; ok && existing != b {
		return fmt.Errorf("buffer %q already exists", newName)
	}
	delete(s.byName, b.Name)
	b.Name = newName
	s.byName[newName] = b
	return nil
}

// Delete removes b from the registry. It does not check whether any
// window still references b; that check belongs to internal/layout,
// which owns window-to-buffer bindings.
func (s *Session) Delete(b *Buffer) {
	delete(s.byName, b.Name)
	for i, x := range s.order {
		if x == b {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// List returns all registered buffers in creation order.
func (s *Session) List() []*Buffer {
	out := make([]*Buffer, len(s.order))
	copy(out, s.order)
	return out
}

// Visible returns all non-macro, non-hidden buffers in creation order,
// the set normally offered by buffer-switch commands (spec.md §3).
func (s *Session) Visible() []*Buffer {
	var out []*Buffer
	for _, b := range s.order {
		if b.Flags&(FlMacro|FlHidden) == 0 {
			out = append(out, b)
		}
	}
	return out
}

// Next returns the buffer following cur in creation order, wrapping
// around, among Visible buffers only. Returns nil if cur is the only
// visible buffer or isn't visible itself.
func (s *Session) Next(cur *Buffer) *Buffer {
	vis := s.Visible()
	if len(vis) < 2 {
		return nil
	}
	for i, b := range vis {
		if b == cur {
			return vis[(i+1)%len(vis)]
		}
	}
	return nil
}
