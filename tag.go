package statsd

import "sort"

// A Tag is a name/value pair attached to a metric.
//
// Tag names and values are free-form strings: characters that would collide
// with a dialect's wire syntax are substituted by the serializer when the
// packet is rendered, never earlier, so the same tag set can be reused
// across clients speaking different dialects.
type Tag struct {
	Name  string
	Value string
}

// T is shorthand for constructing a Tag.
func T(name string, value string) Tag {
	return Tag{Name: name, Value: value}
}

// NewTags converts a map into a normalized tag list: entries with empty keys
// are dropped and the result is sorted lexicographically by name. The
// function never fails, odd input shrinks the result instead of aborting a
// metric submission.
func NewTags(m map[string]string) []Tag {
	if len(m) == 0 {
		return nil
	}

	tags := make([]Tag, 0, len(m))
	for name, value := range m {
		if len(name) == 0 {
			continue
		}
		tags = append(tags, Tag{Name: name, Value: value})
	}

	SortTags(tags)
	return tags
}

// SortTags sorts the slice of tags in place, ordering by name and breaking
// ties on value. The sort is stable so equal tags keep their relative order.
func SortTags(tags []Tag) {
	if !TagsAreSorted(tags) {
		sort.SliceStable(tags, func(i, j int) bool {
			if tags[i].Name != tags[j].Name {
				return tags[i].Name < tags[j].Name
			}
			return tags[i].Value < tags[j].Value
		})
	}
}

// TagsAreSorted returns true if the slice of tags is sorted by name.
func TagsAreSorted(tags []Tag) bool {
	for i := len(tags) - 1; i > 0; i-- {
		if tags[i-1].Name > tags[i].Name {
			return false
		}
	}
	return true
}

// mergeTags merges two tag lists into a fresh slice, with entries of extra
// overriding entries of base that carry the same name. Within one list the
// later entry wins, which gives map-merge semantics to callers passing
// literal slices. Tags with empty names are dropped. The result is sorted
// and safe to retain, the inputs are never modified.
func mergeTags(base []Tag, extra []Tag) []Tag {
	n := len(base) + len(extra)
	if n == 0 {
		return nil
	}

	tags := make([]Tag, 0, n)
	for _, t := range base {
		if len(t.Name) != 0 {
			tags = append(tags, t)
		}
	}
	for _, t := range extra {
		if len(t.Name) != 0 {
			tags = append(tags, t)
		}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	// Collapse runs of equal names. The sort is stable, so the last entry
	// of a run is the latest override.
	out := tags[:0]
	for i := range tags {
		if i+1 < len(tags) && tags[i+1].Name == tags[i].Name {
			continue
		}
		out = append(out, tags[i])
	}

	return out
}

// copyTags returns a copy of tags, or nil if tags is empty.
func copyTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	c := make([]Tag, len(tags))
	copy(c, tags)
	return c
}
