package textview

import "github.com/iw2rmb/textkit/layout"

// Handle addresses a RenderCache slot. A handle goes stale when its slot is
// freed; lookups through a stale handle fail even after the slot is reused.
type Handle struct {
	Index uint32
	Gen   uint32
}

type renderSlot struct {
	gen     uint32
	live    bool
	id      layout.FragmentID
	surface RenderingSurface
}

// RenderCache is an arena of rendering surfaces keyed by fragment ID.
// Slots are freed explicitly; nothing expires on its own.
type RenderCache struct {
	slots []renderSlot
	free  []uint32
	byID  map[layout.FragmentID]Handle
}

func NewRenderCache() *RenderCache {
	return &RenderCache{byID: make(map[layout.FragmentID]Handle)}
}

// Len returns the number of live surfaces.
func (c *RenderCache) Len() int { return len(c.byID) }

// Insert stores s for fragment id and returns its handle. An existing entry
// for id is freed first.
func (c *RenderCache) Insert(id layout.FragmentID, s RenderingSurface) Handle {
	if h, ok := c.byID[id]; ok {
		c.Free(h)
	}

	var idx uint32
	if n := len(c.free); n > 0 {
		idx = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		idx = uint32(len(c.slots))
		c.slots = append(c.slots, renderSlot{})
	}
	slot := &c.slots[idx]
	slot.live = true
	slot.id = id
	slot.surface = s

	h := Handle{Index: idx, Gen: slot.gen}
	c.byID[id] = h
	return h
}

// Lookup returns the handle registered for fragment id.
func (c *RenderCache) Lookup(id layout.FragmentID) (Handle, bool) {
	h, ok := c.byID[id]
	return h, ok
}

// Get returns the surface behind h.
func (c *RenderCache) Get(h Handle) (RenderingSurface, bool) {
	slot, ok := c.slot(h)
	if !ok {
		return nil, false
	}
	return slot.surface, true
}

// Free releases h. It reports false for stale handles.
func (c *RenderCache) Free(h Handle) bool {
	slot, ok := c.slot(h)
	if !ok {
		return false
	}
	delete(c.byID, slot.id)
	slot.live = false
	slot.surface = nil
	slot.gen++
	c.free = append(c.free, h.Index)
	return true
}

// Handles returns a copy of the fragment-to-handle index.
func (c *RenderCache) Handles() map[layout.FragmentID]Handle {
	out := make(map[layout.FragmentID]Handle, len(c.byID))
	for id, h := range c.byID {
		out[id] = h
	}
	return out
}

func (c *RenderCache) slot(h Handle) (*renderSlot, bool) {
	if int(h.Index) >= len(c.slots) {
		return nil, false
	}
	slot := &c.slots[h.Index]
	if !slot.live || slot.gen != h.Gen {
		return nil, false
	}
	return slot, true
}
