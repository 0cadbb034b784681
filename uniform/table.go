package uniform

import (
	"github.com/fragview/fragview/glx"
)

type entry struct {
	value    Value
	location int32
	resolved bool
	dirty    bool
}

// Table is a name-keyed uniform store with per-entry dirty flags and a
// location cache. It is not safe for concurrent use; all calls must
// come from the thread that owns the GL context.
type Table struct {
	entries map[string]*entry
}

// NewTable seeds a table from initial values. Every entry starts dirty
// so the first upload pushes the complete set.
func NewTable(initial map[string]Value) *Table {
	t := &Table{entries: make(map[string]*entry, len(initial))}
	for name, v := range initial {
		t.entries[name] = &entry{value: v, dirty: true}
	}
	return t
}

// Set inserts or replaces the named value. A value equal to the one
// already uploaded leaves the entry clean; anything else marks it
// dirty for the next upload. Set always succeeds.
func (t *Table) Set(name string, v Value) {
	if e, ok := t.entries[name]; ok {
		if !e.dirty && e.value.Equal(v) {
			return
		}
		e.value = v
		e.dirty = true
		return
	}
	t.entries[name] = &entry{value: v, dirty: true}
}

// Get returns the current value for name.
func (t *Table) Get(name string) (Value, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Value{}, false
	}
	return e.value, true
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// UploadDirty pushes every dirty entry to program, resolving and
// caching uniform locations by name. Names the program does not
// declare are skipped: a fragment shader is allowed to not declare
// every supplied uniform. The program must be in use.
func (t *Table) UploadDirty(g glx.Funcs, program uint32) {
	for name, e := range t.entries {
		if !e.dirty {
			continue
		}
		if !e.resolved {
			e.location = g.GetUniformLocation(program, name)
			e.resolved = true
		}
		if e.location >= 0 {
			e.value.Upload(g, e.location)
		}
		e.dirty = false
	}
}

// InvalidateLocations drops the location cache. Required after the
// program is replaced, since locations are only valid for the program
// they were resolved against.
func (t *Table) InvalidateLocations() {
	for _, e := range t.entries {
		e.resolved = false
	}
}

// MarkAllDirty schedules every entry for re-upload, e.g. after a new
// program has been linked.
func (t *Table) MarkAllDirty() {
	for _, e := range t.entries {
		e.dirty = true
	}
}
