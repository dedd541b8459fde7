package model

import (
	"encoding/json"
	"strings"
)

// TagSet is an ordered set of tag strings: duplicates are collapsed,
// first-seen order is preserved. Assembly order is fixed by the resolver
// so identical inputs always produce identical tag lists.
type TagSet struct {
	tags []string
	seen map[string]struct{}
}

func NewTagSet(tags ...string) *TagSet {
	ts := &TagSet{seen: make(map[string]struct{})}
	for _, t := range tags {
		ts.Add(t)
	}
	return ts
}

// Add appends a tag unless it is blank or already present.
func (ts *TagSet) Add(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	if _, ok := ts.seen[tag]; ok {
		return
	}
	ts.seen[tag] = struct{}{}
	ts.tags = append(ts.tags, tag)
}

func (ts *TagSet) Contains(tag string) bool {
	_, ok := ts.seen[strings.TrimSpace(tag)]
	return ok
}

// Tags returns a copy of the tags in insertion order.
func (ts *TagSet) Tags() []string {
	out := make([]string, len(ts.tags))
	copy(out, ts.tags)
	return out
}

func (ts *TagSet) Len() int { return len(ts.tags) }

// String renders the comma-separated form used by storefront imports.
func (ts *TagSet) String() string { return strings.Join(ts.tags, ", ") }

func (ts *TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.tags)
}
