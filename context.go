package statsd

import "context"

// tagsKey is the context key the tag slice is stored under. It is a pointer
// so lookups compare identities, not values.
type tagsKey struct{}

func (*tagsKey) String() string { return "statsd_tags_context_key" }

var contextKeyTags = &tagsKey{}

// ContextWithTags returns a context carrying tags, for programs that
// accumulate metric tags along a request path and attach them at the
// instrumentation points:
//
//	client.Incr("page.views", statsd.ContextTags(ctx), 1)
//
// The tags are carried by reference: adding tags through ContextAddTags on
// the returned context, or on any context derived from it, makes them
// visible to every holder of the same context tree. When ctx already
// carries tags the set is extended and ctx itself is returned.
//
// The helpers do not synchronize access, contexts mutated from multiple
// goroutines need external coordination.
func ContextWithTags(ctx context.Context, tags ...Tag) context.Context {
	if x := contextTags(ctx); x != nil {
		*x = append(*x, tags...)
		return ctx
	}
	return context.WithValue(ctx, contextKeyTags, &tags)
}

// ContextAddTags adds tags to the set carried by ctx, reporting whether ctx
// was prepared with ContextWithTags.
func ContextAddTags(ctx context.Context, tags ...Tag) bool {
	if x := contextTags(ctx); x != nil {
		*x = append(*x, tags...)
		return true
	}
	return false
}

// ContextTags returns a copy of the tags carried by ctx, nil when there are
// none.
func ContextTags(ctx context.Context) []Tag {
	x := contextTags(ctx)
	if x == nil || len(*x) == 0 {
		return nil
	}
	tags := make([]Tag, len(*x))
	copy(tags, *x)
	return tags
}

func contextTags(ctx context.Context) *[]Tag {
	x, _ := ctx.Value(contextKeyTags).(*[]Tag)
	return x
}
