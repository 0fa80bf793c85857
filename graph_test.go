package attrgraph

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Intern(t *testing.T) {
	g := New()

	point := g.Intern("Point", 16)
	again := g.Intern("Point", 32)

	assert.Same(t, point, again, "descriptors are canonical per graph")

	size, ok := point.ValueSize()
	require.True(t, ok)
	assert.Equal(t, 16, size, "first intern wins")

	other := g.Intern("Rect", 32)
	assert.NotSame(t, point, other)
	assert.Equal(t, "Rect", other.Name())
}

func TestGraph_Subgraphs(t *testing.T) {
	g := New()

	sg1 := g.NewSubgraph()
	sg2 := g.NewSubgraph()

	assert.Len(t, g.Subgraphs(), 2)
	assert.Same(t, g, sg1.Graph())

	sg1.CreateAttribute(g.Intern("Int", 8), 1)
	sg1.CreateAttribute(g.Intern("Int", 8), 2)

	assert.Equal(t, uint64(2), sg1.AttributeCount())
	assert.Equal(t, uint64(0), sg2.AttributeCount())
}

func TestGraph_Observers(t *testing.T) {
	g := New()
	owner := g.NewSubgraph()
	other := g.NewSubgraph()

	watched := owner.CreateAttribute(g.Intern("Int", 8), 1)
	unrelated := other.CreateAttribute(g.Intern("Int", 8), 2)

	fired := 0
	g.Observe(watched, func() { fired++ })
	g.Observe(unrelated, func() { t.Error("observer for a live subgraph fired") })

	owner.Invalidate()
	assert.Equal(t, 1, fired)

	// Observers fire once; closing the already-invalidated subgraph finds
	// nothing left to notify.
	owner.Close()
	assert.Equal(t, 1, fired)

	assert.False(t, g.Unobserve(watched), "dropped when it fired")
	assert.True(t, g.Unobserve(unrelated))

	require.Panics(t, func() { g.Observe(NilAttribute, func() {}) })
}

func TestSubgraph_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	g := New(func(o *Options) { o.Logger = logger })
	sg := g.NewSubgraph()
	sg.Invalidate()

	out := buf.String()
	assert.Contains(t, out, "subgraph created")
	assert.Contains(t, out, "subgraph invalidated")
	assert.Contains(t, out, "subgraph=0", "lifecycle events carry the subgraph index")
}

func TestGraph_Close(t *testing.T) {
	g := New()
	sg := g.NewSubgraph()
	id := sg.CreateAttribute(g.Intern("Int", 8), 1)

	g.Close()

	assert.True(t, sg.IsInvalidated())
	_ = id // resolving id past this point is a caller error
}

func TestSubgraph_Lifecycle(t *testing.T) {
	g := New()
	sg := g.NewSubgraph()

	id := sg.CreateAttribute(g.Intern("Int", 8), 7)
	require.False(t, sg.IsInvalidated())

	sg.Invalidate()
	assert.True(t, sg.IsInvalidated())
	// Invalidation keeps records readable for the scheduler's final sweep.
	assert.Equal(t, 7, id.ToNode().Value())

	sg.Close()
	assert.True(t, sg.IsInvalidated())
}

func TestNode_Value(t *testing.T) {
	g := New()
	sg := g.NewSubgraph()

	id := sg.CreateAttribute(g.Intern("String", -1), "initial")
	node := id.ToNode()

	assert.Equal(t, "initial", node.Value())
	node.SetValue("updated")
	assert.Equal(t, "updated", id.ToNode().Value())
	assert.Equal(t, "String", node.Type().Name())
}
