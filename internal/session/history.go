// Package session owns the image session: the current picture, loading
// state, navigation history, slideshow timing and gesture interpretation.
package session

import "artframe/internal/provider"

// History records previously shown image references. The current picture
// lives outside the stack; Back hands out history[index] and moves the
// cursor left, Push truncates anything forward of the cursor before
// appending. The cursor always stays within [-1, len-1].
type History struct {
	refs     []provider.ImageRef
	index    int
	capacity int
}

// NewHistory creates a History. capacity <= 0 means unbounded.
func NewHistory(capacity int) *History {
	return &History{
		refs:     make([]provider.ImageRef, 0),
		index:    -1,
		capacity: capacity,
	}
}

// Push archives a reference that is being replaced on screen. Entries
// forward of the cursor (abandoned by earlier Back calls) are dropped.
func (h *History) Push(ref provider.ImageRef) {
	if h.index < len(h.refs)-1 {
		h.refs = h.refs[:h.index+1]
	}
	h.refs = append(h.refs, ref)

	if h.capacity > 0 && len(h.refs) > h.capacity {
		h.refs = h.refs[len(h.refs)-h.capacity:]
	}
	h.index = len(h.refs) - 1
}

// Back returns the reference under the cursor and moves the cursor left.
// It reports false when there is nothing to go back to.
func (h *History) Back() (provider.ImageRef, bool) {
	if len(h.refs) == 0 || h.index == -1 {
		return provider.ImageRef{}, false
	}
	ref := h.refs[h.index]
	h.index--
	return ref, true
}

// Len returns the number of archived references.
func (h *History) Len() int {
	return len(h.refs)
}

// Index returns the cursor position.
func (h *History) Index() int {
	return h.index
}

// Refs returns a copy of the archived references, oldest first.
func (h *History) Refs() []provider.ImageRef {
	out := make([]provider.ImageRef, len(h.refs))
	copy(out, h.refs)
	return out
}

// Clear resets the stack and cursor.
func (h *History) Clear() {
	h.refs = h.refs[:0]
	h.index = -1
}
