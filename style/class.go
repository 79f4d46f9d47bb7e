package style

import (
	"sort"
	"sync"
)

// ClassTable is the process-wide mapping from class name to a small
// integer ID, and from ID to the Styling aggregate that class applies.
// Concurrent access (render thread resolving classes, host goroutine
// registering new ones) is guarded internally; spec §5 calls this out as
// one of the two data structures protected by a scoped lock (the other
// being the memory/timer list).
type ClassTable struct {
	mu      sync.RWMutex
	byName  map[string]int
	byID    map[int]*Styling
	nextID  int
}

// NewClassTable returns an empty table.
func NewClassTable() *ClassTable {
	return &ClassTable{
		byName: make(map[string]int),
		byID:   make(map[int]*Styling),
	}
}

// Add registers name with the given styling, allocating a new ID the first
// time name is seen and reusing it (overwriting the styling) otherwise.
func (t *ClassTable) Add(name string, styling *Styling) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.byName[name]
	if !ok {
		id = t.nextID
		t.nextID++
		t.byName[name] = id
	}
	t.byID[id] = styling
	return id
}

// IDFor returns the ID registered for name, or false if name is unknown.
func (t *ClassTable) IDFor(name string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byName[name]
	return id, ok
}

// Get returns the Styling registered for id.
func (t *ClassTable) Get(id int) (*Styling, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.byID[id]
	return s, ok
}

// Resolve applies every class in ids, in ascending ID order, onto target —
// the CLASS dirty-bit resolution step of spec §4.1. Each class's
// Initialized-or-higher fields overwrite target's fields of equal-or-lower
// status, per the usual status-wins rule.
func (t *ClassTable) Resolve(target *Styling, ids []int) {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	t.mu.RLock()
	classes := make([]*Styling, 0, len(sorted))
	for _, id := range sorted {
		if s, ok := t.byID[id]; ok {
			classes = append(classes, s)
		}
	}
	t.mu.RUnlock()

	for _, class := range classes {
		mergeInto(target, class)
	}
}

// mergeInto copies every field of src into dst using the same
// status-wins-then-later-wins rule Attribute.Imprint uses, treating each
// already-set field in src as an Initialized assignment onto dst.
func mergeInto(dst, src *Styling) {
	if src.fieldStatus[fPosition] > Uninitialized {
		dst.apply(fPosition, Initialized, func() {
			dst.X, dst.Y, dst.Z = src.X, src.Y, src.Z
			dst.PosX, dst.PosY, dst.PosZ = src.PosX, src.PosY, src.PosZ
		})
	}
	if src.fieldStatus[fWidth] > Uninitialized {
		dst.apply(fWidth, Initialized, func() {
			dst.Width, dst.WidthScalar = src.Width, src.WidthScalar
		})
	}
	if src.fieldStatus[fHeight] > Uninitialized {
		dst.apply(fHeight, Initialized, func() {
			dst.Height, dst.HeightScalar = src.Height, src.HeightScalar
		})
	}
	if src.fieldStatus[fBorderEnabled] > Uninitialized {
		dst.apply(fBorderEnabled, Initialized, func() {
			dst.BorderEnabled = src.BorderEnabled
		})
	}
	if src.fieldStatus[fStyledBorder] > Uninitialized {
		dst.apply(fStyledBorder, Initialized, func() {
			dst.Border = src.Border
		})
	}
	if src.fieldStatus[fFlow] > Uninitialized {
		dst.apply(fFlow, Initialized, func() { dst.Flow = src.Flow })
	}
	if src.fieldStatus[fWrap] > Uninitialized {
		dst.apply(fWrap, Initialized, func() { dst.Wrap = src.Wrap })
	}
	if src.fieldStatus[fAllowOverflow] > Uninitialized {
		dst.apply(fAllowOverflow, Initialized, func() { dst.AllowOverflow = src.AllowOverflow })
	}
	if src.fieldStatus[fAllowDynamicSize] > Uninitialized {
		dst.apply(fAllowDynamicSize, Initialized, func() { dst.AllowDynamicSize = src.AllowDynamicSize })
	}
	if src.fieldStatus[fAllowScrolling] > Uninitialized {
		dst.apply(fAllowScrolling, Initialized, func() { dst.AllowScrolling = src.AllowScrolling })
	}
	if src.fieldStatus[fMargin] > Uninitialized {
		dst.apply(fMargin, Initialized, func() { dst.Margin = src.Margin })
	}
	if src.fieldStatus[fShadow] > Uninitialized {
		dst.apply(fShadow, Initialized, func() { dst.Shadow = src.Shadow })
	}
	if src.fieldStatus[fOpacity] > Uninitialized {
		dst.apply(fOpacity, Initialized, func() { dst.Opacity = src.Opacity })
	}
	if src.fieldStatus[fAlign] > Uninitialized {
		dst.apply(fAlign, Initialized, func() { dst.Align = src.Align })
	}
	if src.fieldStatus[fDisplay] > Uninitialized {
		dst.apply(fDisplay, Initialized, func() { dst.Display = src.Display })
	}
	if src.fieldStatus[fName] > Uninitialized {
		dst.apply(fName, Initialized, func() { dst.Name = src.Name })
	}
	if src.fieldStatus[fTitle] > Uninitialized {
		dst.apply(fTitle, Initialized, func() { dst.Title = src.Title })
	}
	if src.fieldStatus[fText] > Uninitialized {
		dst.apply(fText, Initialized, func() { dst.Text = src.Text })
	}
	if src.fieldStatus[fMinSize] > Uninitialized {
		dst.apply(fMinSize, Initialized, func() {
			dst.MinWidth, dst.MinHeight = src.MinWidth, src.MinHeight
		})
	}
	for state := 0; state < 3; state++ {
		for role := 0; role < 4; role++ {
			key := fColor + fieldKey(state*4+role)
			if src.fieldStatus[key] > Uninitialized {
				dst.apply(key, Initialized, func() {
					d, s := &dst.Colors[state], src.Colors[state]
					switch colorRole(role) {
					case RoleText:
						d.Text = s.Text
					case RoleBackground:
						d.Background = s.Background
					case RoleBorder:
						d.Border = s.Border
					case RoleBorderBackground:
						d.BorderBackground = s.BorderBackground
					}
				})
			}
		}
	}
}
