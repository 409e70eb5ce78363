// Package graph implements the in-memory knowledge graph correlating life
// items by shared attributes.
//
// Every inserted node is scanned against all existing nodes and an edge is
// created whenever a relationship rule matches (shared client, shared
// authority, close deadlines, shared creditor). Insertion is an idempotent
// upsert keyed by the node id, and edge creation has set semantics: the same
// relationship between the same pair of nodes is recorded once.
//
// The graph is not safe for concurrent use; callers serialize access.
package graph

import (
	"fmt"
	"time"
)

// Relationship types produced by DetectRelationship.
const (
	RelSameClient    = "SAME_CLIENT"
	RelSameAuthority = "SAME_AUTHORITY"
	RelSameDay       = "SAME_DAY"
	RelSameWeek      = "SAME_WEEK"
	RelSameCreditor  = "SAME_CREDITOR"
)

// NodeData holds the item attributes the relationship rules inspect, plus
// the raw item payload carried through for display.
type NodeData struct {
	// ID is the caller-supplied stable id of the underlying item.
	ID string `json:"id"`

	// Client, Authority and Creditor correlate items that share a person,
	// a government office, or a collection agency.
	Client    string `json:"client,omitempty"`
	Authority string `json:"authority,omitempty"`
	Creditor  string `json:"creditor,omitempty"`

	// Deadline is an ISO date string; empty when the item has none.
	Deadline string `json:"deadline,omitempty"`

	// Payload is the full item, kept untouched for serialization.
	Payload interface{} `json:"payload,omitempty"`
}

// Connection is the per-node record of one incident edge.
type Connection struct {
	// To and From hold the peer node id; exactly one is set, depending on
	// which side of the edge this node is.
	To   string `json:"to,omitempty"`
	From string `json:"from,omitempty"`

	// Type is the relationship type of the edge.
	Type string `json:"type"`
}

// Node is a single ingested item.
type Node struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Data        NodeData     `json:"data"`
	Created     time.Time    `json:"created"`
	Connections []Connection `json:"connections"`
}

// Edge links two nodes with a detected relationship. Edges are undirected in
// effect: both endpoints receive a reciprocal connection record.
type Edge struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Created  time.Time         `json:"created"`
}

// Related pairs a node with its hop distance from a traversal origin.
type Related struct {
	Node  *Node `json:"node"`
	Level int   `json:"level"`
}

// Context is the neighborhood of a node up to a traversal depth.
type Context struct {
	Node    *Node     `json:"node"`
	Related []Related `json:"related"`
	// Patterns is reserved for future correlation summaries.
	Patterns []string `json:"patterns"`
}

// Graph holds nodes, edges and a per-type index.
type Graph struct {
	nodes map[string]*Node
	edges []Edge
	index map[string][]string

	// edgeSet deduplicates edges by unordered endpoint pair and type.
	edgeSet map[string]bool

	// clock supplies timestamps; replaceable in tests.
	clock func() time.Time
}

// New creates an empty knowledge graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		index:   make(map[string][]string),
		edgeSet: make(map[string]bool),
		clock:   time.Now,
	}
}

// SetClock overrides the timestamp source. Intended for tests.
func (g *Graph) SetClock(clock func() time.Time) {
	g.clock = clock
}

// AddNode upserts an item as a graph node and auto-connects it to every
// existing related node. The node id is "<type>_<data.ID>", so re-ingesting
// the same item updates it in place instead of duplicating it.
//
// Returns the node id.
func (g *Graph) AddNode(nodeType string, data NodeData) string {
	id := fmt.Sprintf("%s_%s", nodeType, data.ID)

	if existing, ok := g.nodes[id]; ok {
		existing.Data = data
		return id
	}

	node := &Node{
		ID:      id,
		Type:    nodeType,
		Data:    data,
		Created: g.clock(),
	}
	g.nodes[id] = node
	g.index[nodeType] = append(g.index[nodeType], id)
	g.autoConnect(node)
	return id
}

// autoConnect scans all existing nodes and records an edge for each detected
// relationship. O(n) per insert.
func (g *Graph) autoConnect(newNode *Node) {
	for _, node := range g.nodes {
		if node.ID == newNode.ID {
			continue
		}
		if rel := DetectRelationship(newNode.Data, node.Data); rel != "" {
			g.AddEdge(newNode.ID, node.ID, rel, nil)
		}
	}
}

// DetectRelationship reports the relationship between two items, or "" when
// none applies. Rules are evaluated in a fixed order and the first match
// wins; the SAME_DAY check precedes SAME_WEEK, so SAME_WEEK only fires for
// deadline gaps of one to seven days.
func DetectRelationship(a, b NodeData) string {
	if a.Client != "" && a.Client == b.Client {
		return RelSameClient
	}
	if a.Authority != "" && a.Authority == b.Authority {
		return RelSameAuthority
	}
	if a.Deadline != "" && b.Deadline != "" {
		da, errA := time.Parse("2006-01-02", a.Deadline)
		db, errB := time.Parse("2006-01-02", b.Deadline)
		if errA == nil && errB == nil {
			diff := da.Sub(db)
			if diff < 0 {
				diff = -diff
			}
			if diff < 24*time.Hour {
				return RelSameDay
			}
			if diff < 7*24*time.Hour {
				return RelSameWeek
			}
		}
	}
	if a.Creditor != "" && a.Creditor == b.Creditor {
		return RelSameCreditor
	}
	return ""
}

// AddEdge records an edge between two existing nodes and updates both
// connection lists. Re-adding the same (pair, type) combination is a no-op.
func (g *Graph) AddEdge(from, to, relType string, metadata map[string]string) {
	key := edgeKey(from, to, relType)
	if g.edgeSet[key] {
		return
	}
	fromNode, okFrom := g.nodes[from]
	toNode, okTo := g.nodes[to]
	if !okFrom || !okTo {
		return
	}

	g.edgeSet[key] = true
	g.edges = append(g.edges, Edge{
		From:     from,
		To:       to,
		Type:     relType,
		Metadata: metadata,
		Created:  g.clock(),
	})
	fromNode.Connections = append(fromNode.Connections, Connection{To: to, Type: relType})
	toNode.Connections = append(toNode.Connections, Connection{From: from, Type: relType})
}

func edgeKey(from, to, relType string) string {
	if from > to {
		from, to = to, from
	}
	return from + "|" + to + "|" + relType
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns the edge list in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeTypes returns the node types present in the index.
func (g *Graph) NodeTypes() []string {
	types := make([]string, 0, len(g.index))
	for t := range g.index {
		types = append(types, t)
	}
	return types
}

// NodesOfType returns the ids of all nodes of the given type, in insertion
// order.
func (g *Graph) NodesOfType(nodeType string) []string {
	return g.index[nodeType]
}

// peer returns the node id on the other side of a connection.
func (c Connection) peer() string {
	if c.To != "" {
		return c.To
	}
	return c.From
}

// GetContext returns the neighborhood of a node up to depth hops, breadth
// first. The origin node itself is excluded from Related.
func (g *Graph) GetContext(nodeID string, depth int) Context {
	ctx := Context{
		Node:     g.nodes[nodeID],
		Related:  []Related{},
		Patterns: []string{},
	}
	if ctx.Node == nil {
		return ctx
	}

	type visit struct {
		id    string
		level int
	}
	visited := make(map[string]bool)
	queue := []visit{{id: nodeID, level: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.level > depth || visited[cur.id] {
			continue
		}
		visited[cur.id] = true

		node := g.nodes[cur.id]
		if node == nil {
			continue
		}
		if cur.id != nodeID {
			ctx.Related = append(ctx.Related, Related{Node: node, Level: cur.level})
		}
		if cur.level < depth {
			for _, conn := range node.Connections {
				queue = append(queue, visit{id: conn.peer(), level: cur.level + 1})
			}
		}
	}
	return ctx
}

// FindPath returns the node ids along a shortest path between two nodes, or
// nil when no path exists.
func (g *Graph) FindPath(from, to string) []string {
	visited := make(map[string]bool)
	queue := [][]string{{from}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		current := path[len(path)-1]

		if current == to {
			return path
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		node := g.nodes[current]
		if node == nil {
			continue
		}
		for _, conn := range node.Connections {
			next := append(append([]string{}, path...), conn.peer())
			queue = append(queue, next)
		}
	}
	return nil
}
