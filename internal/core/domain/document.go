package domain

// Document is the portable form of an environment's structure.
// It maps data type handles to fragments and remembers the order in
// which handles were first set. Fragments are built from map[string]any,
// []any and scalar values only.
type Document struct {
	handles   []string
	fragments map[string]any
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		fragments: make(map[string]any),
	}
}

// Set stores the fragment for a handle.
// Replacing an existing handle keeps its original position.
func (d *Document) Set(handle string, fragment any) {
	if _, ok := d.fragments[handle]; !ok {
		d.handles = append(d.handles, handle)
	}
	d.fragments[handle] = fragment
}

// Get returns the fragment for a handle.
func (d *Document) Get(handle string) (any, bool) {
	fragment, ok := d.fragments[handle]
	return fragment, ok
}

// Has reports whether the document contains the handle,
// even when its fragment is empty.
func (d *Document) Has(handle string) bool {
	_, ok := d.fragments[handle]
	return ok
}

// Delete removes a handle from the document.
func (d *Document) Delete(handle string) {
	if _, ok := d.fragments[handle]; !ok {
		return
	}
	delete(d.fragments, handle)
	for i, h := range d.handles {
		if h == handle {
			d.handles = append(d.handles[:i], d.handles[i+1:]...)
			break
		}
	}
}

// Handles returns the document's handles in insertion order.
func (d *Document) Handles() []string {
	result := make([]string, len(d.handles))
	copy(result, d.handles)
	return result
}

// Len returns the number of handles in the document.
func (d *Document) Len() int {
	return len(d.handles)
}
