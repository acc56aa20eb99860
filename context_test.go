package statsd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type otherKey struct{}

func TestContextTags(t *testing.T) {
	x := context.Background()

	y := ContextWithTags(x)
	assert.Equal(t, 0, len(ContextTags(y)), "initialized context carries no tags yet")
	assert.True(t, ContextAddTags(y, T("asdf", "qwer")))
	assert.Equal(t, 1, len(ContextTags(y)), "adding tags should result in new tags")
	assert.Equal(t, 0, len(ContextTags(x)), "original context should have no tags")

	// Derived contexts share the tag set with their parents.
	z := context.WithValue(y, otherKey{}, "ignored")
	assert.Equal(t, 1, len(ContextTags(z)), "derived context should see the parent tags")

	assert.True(t, ContextAddTags(z, T("zxcv", "uiop")))
	assert.Equal(t, 2, len(ContextTags(z)), "adding tags should update the derived context")
	assert.Equal(t, 2, len(ContextTags(y)), "adding tags should update the parent context")
	assert.Equal(t, 0, len(ContextTags(x)), "original context should still have no tags")

	assert.True(t, ContextAddTags(z, T("a", "k"), T("b", "k"), T("c", "k")))
	assert.Equal(t, 5, len(ContextTags(z)))
	assert.Equal(t, 5, len(ContextTags(y)))
}

func TestContextTagsCopies(t *testing.T) {
	ctx := ContextWithTags(context.Background(), T("country", "china"))

	tags := ContextTags(ctx)
	tags[0] = T("country", "japan")

	assert.Equal(t, []Tag{T("country", "china")}, ContextTags(ctx),
		"mutating the returned slice should not affect the context")
}

func TestContextWithTagsExtends(t *testing.T) {
	ctx := ContextWithTags(context.Background(), T("country", "china"))

	// A second call on a prepared context extends the set in place and
	// returns the same context.
	ctx2 := ContextWithTags(ctx, T("env", "prod"))
	assert.Equal(t, ctx, ctx2)
	assert.Equal(t, []Tag{T("country", "china"), T("env", "prod")}, ContextTags(ctx))
}

func TestContextAddTagsWithoutSetup(t *testing.T) {
	ctx := context.Background()

	assert.False(t, ContextAddTags(ctx, T("country", "china")),
		"contexts not prepared with ContextWithTags cannot accumulate tags")
	assert.Nil(t, ContextTags(ctx))
}
