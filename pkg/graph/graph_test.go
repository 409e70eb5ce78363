package graph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michal-ai/orchestrator-go/pkg/graph"
)

func newGraph() *graph.Graph {
	g := graph.New()
	g.SetClock(func() time.Time {
		return time.Date(2025, 9, 24, 12, 0, 0, 0, time.UTC)
	})
	return g
}

func TestAddNodeID(t *testing.T) {
	g := newGraph()
	id := g.AddNode("academic", graph.NodeData{ID: "task-1"})
	assert.Equal(t, "academic_task-1", id)
	require.NotNil(t, g.Node(id))
	assert.Equal(t, "academic", g.Node(id).Type)
}

func TestAddNodeUpsert(t *testing.T) {
	g := newGraph()
	g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "כרמית"})
	g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "רחל"})

	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "רחל", g.Node("academic_task-1").Data.Client)
}

func TestDetectRelationship(t *testing.T) {
	tests := []struct {
		name string
		a, b graph.NodeData
		want string
	}{
		{
			"same client",
			graph.NodeData{Client: "כרמית"},
			graph.NodeData{Client: "כרמית"},
			graph.RelSameClient,
		},
		{
			"same authority",
			graph.NodeData{Authority: "Jobcenter"},
			graph.NodeData{Authority: "Jobcenter"},
			graph.RelSameAuthority,
		},
		{
			"same day",
			graph.NodeData{Deadline: "2025-09-26"},
			graph.NodeData{Deadline: "2025-09-26"},
			graph.RelSameDay,
		},
		{
			"same week",
			graph.NodeData{Deadline: "2025-09-26"},
			graph.NodeData{Deadline: "2025-09-29"},
			graph.RelSameWeek,
		},
		{
			"same creditor",
			graph.NodeData{Creditor: "PAIR Finance"},
			graph.NodeData{Creditor: "PAIR Finance"},
			graph.RelSameCreditor,
		},
		{
			"client wins over deadline",
			graph.NodeData{Client: "כרמית", Deadline: "2025-09-26"},
			graph.NodeData{Client: "כרמית", Deadline: "2025-09-26"},
			graph.RelSameClient,
		},
		{
			"deadline wins over creditor",
			graph.NodeData{Creditor: "PAIR Finance", Deadline: "2025-09-26"},
			graph.NodeData{Creditor: "PAIR Finance", Deadline: "2025-09-27"},
			graph.RelSameDay,
		},
		{
			"empty client never matches",
			graph.NodeData{},
			graph.NodeData{},
			"",
		},
		{
			"eight day gap is unrelated",
			graph.NodeData{Deadline: "2025-09-26"},
			graph.NodeData{Deadline: "2025-10-04"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, graph.DetectRelationship(tt.a, tt.b))
		})
	}
}

func TestAutoConnectReciprocal(t *testing.T) {
	g := newGraph()
	a := g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "כרמית"})
	b := g.AddNode("academic", graph.NodeData{ID: "task-2", Client: "כרמית"})

	assert.Equal(t, 1, g.EdgeCount())
	require.Len(t, g.Node(a).Connections, 1)
	require.Len(t, g.Node(b).Connections, 1)

	edge := g.Edges()[0]
	assert.Equal(t, graph.RelSameClient, edge.Type)
}

func TestReingestDoesNotDuplicateEdges(t *testing.T) {
	g := newGraph()
	g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "כרמית"})
	g.AddNode("academic", graph.NodeData{ID: "task-2", Client: "כרמית"})

	// Same snapshot again.
	g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "כרמית"})
	g.AddNode("academic", graph.NodeData{ID: "task-2", Client: "כרמית"})

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Len(t, g.Node("academic_task-1").Connections, 1)
}

func TestAddEdgeUnknownNodeIgnored(t *testing.T) {
	g := newGraph()
	g.AddNode("academic", graph.NodeData{ID: "task-1"})
	g.AddEdge("academic_task-1", "academic_task-404", graph.RelSameClient, nil)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestNodesOfType(t *testing.T) {
	g := newGraph()
	g.AddNode("academic", graph.NodeData{ID: "task-1"})
	g.AddNode("debt", graph.NodeData{ID: "debt-1"})
	g.AddNode("academic", graph.NodeData{ID: "task-2"})

	assert.ElementsMatch(t, []string{"academic", "debt"}, g.NodeTypes())
	assert.Equal(t, []string{"academic_task-1", "academic_task-2"}, g.NodesOfType("academic"))
}

func TestGetContext(t *testing.T) {
	g := newGraph()
	// a-b share a client, b-c share a creditor: c is two hops from a.
	a := g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "כרמית"})
	g.AddNode("debt", graph.NodeData{ID: "debt-1", Client: "כרמית", Creditor: "PAIR Finance"})
	c := g.AddNode("debt", graph.NodeData{ID: "debt-2", Creditor: "PAIR Finance"})

	ctx := g.GetContext(a, 2)
	require.NotNil(t, ctx.Node)
	require.Len(t, ctx.Related, 2)

	levels := map[string]int{}
	for _, rel := range ctx.Related {
		levels[rel.Node.ID] = rel.Level
	}
	assert.Equal(t, 1, levels["debt_debt-1"])
	assert.Equal(t, 2, levels[c])

	// Depth 1 only sees the direct neighbor.
	ctx = g.GetContext(a, 1)
	require.Len(t, ctx.Related, 1)
	assert.Equal(t, "debt_debt-1", ctx.Related[0].Node.ID)
}

func TestGetContextUnknownNode(t *testing.T) {
	g := newGraph()
	ctx := g.GetContext("missing", 2)
	assert.Nil(t, ctx.Node)
	assert.Empty(t, ctx.Related)
}

func TestFindPath(t *testing.T) {
	g := newGraph()
	a := g.AddNode("academic", graph.NodeData{ID: "task-1", Client: "כרמית"})
	b := g.AddNode("debt", graph.NodeData{ID: "debt-1", Client: "כרמית", Creditor: "PAIR Finance"})
	c := g.AddNode("debt", graph.NodeData{ID: "debt-2", Creditor: "PAIR Finance"})

	path := g.FindPath(a, c)
	assert.Equal(t, []string{a, b, c}, path)

	assert.Nil(t, g.FindPath(a, "missing"))
}
