package emlak

import "strings"

// AttributeTable maps human-readable attribute labels ("Oda Sayısı",
// "Isıtma") to their raw values in the order they were found.
// The first value stored under a label wins.
type AttributeTable struct {
	labels []string
	values map[string]string
}

// NewAttributeTable returns an empty table.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{values: make(map[string]string)}
}

// Set stores value under label unless the label is blank or already present.
// It reports whether the value was stored.
func (t *AttributeTable) Set(label, value string) bool {
	label = CollapseWhitespace(label)
	if label == "" {
		return false
	}
	if _, ok := t.values[label]; ok {
		return false
	}
	t.labels = append(t.labels, label)
	t.values[label] = CollapseWhitespace(value)
	return true
}

// Get returns the value stored under label.
func (t *AttributeTable) Get(label string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[CollapseWhitespace(label)]
	return v, ok
}

// Pick returns the first non-blank value among the given label spellings,
// tried in order.
func (t *AttributeTable) Pick(labels ...string) (string, bool) {
	for _, label := range labels {
		if v, ok := t.Get(label); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// Labels returns the labels in insertion order.
func (t *AttributeTable) Labels() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Len returns the number of labels in the table.
func (t *AttributeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.labels)
}
