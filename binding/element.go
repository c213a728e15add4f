package binding

import (
	"maps"
	"slices"
	"sync"
)

// Element is an in-memory view element with attributes, classes and text.
type Element struct {
	mu      sync.Mutex
	attrs   map[string]string
	classes map[string]bool
	text    string
}

// NewElement returns an element with a copy of attrs.
func NewElement(attrs map[string]string) *Element {
	return &Element{
		attrs:   maps.Clone(attrs),
		classes: map[string]bool{},
	}
}

// Attributes returns a copy of the attributes.
func (e *Element) Attributes() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.attrs)
}

// ToggleClass adds class when on is true and removes it otherwise.
func (e *Element) ToggleClass(class string, on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.classes == nil {
		e.classes = map[string]bool{}
	}
	if on {
		e.classes[class] = true
	} else {
		delete(e.classes, class)
	}
}

// HasClass reports whether class is set.
func (e *Element) HasClass(class string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.classes[class]
}

// Classes returns the set classes in sorted order.
func (e *Element) Classes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Sorted(maps.Keys(e.classes))
}

// SetText replaces the text content.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

// Text returns the text content.
func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}
