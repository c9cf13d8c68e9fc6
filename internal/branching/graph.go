// Package branching holds the logical graph over videos and timed questions
// plus the playback resolution rules. Everything here is a pure projection
// of rows already loaded from the content store; nothing talks to the
// database.
package branching

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
)

// Edge is one outgoing labeled edge of the branching graph: a non-empty
// answer slot on a question. A nil Target means "continue current video",
// which points the edge back at the question's own video.
type Edge struct {
	QuestionID uuid.UUID
	VideoID    uuid.UUID
	Slot       types.SlotLabel
	Target     *uuid.UUID
}

// Dangling describes an edge whose target video no longer exists.
type Dangling struct {
	QuestionID uuid.UUID
	Slot       types.SlotLabel
	Target     uuid.UUID
}

// Graph is the explicit branching graph: nodes are video ids, edges are the
// non-empty answer slots across all questions. The graph may contain cycles;
// loop-back remediation flows depend on that, so nothing here rejects or
// breaks them.
type Graph struct {
	nodes map[uuid.UUID]struct{}
	edges []Edge
}

// BuildGraph projects videos and questions into a Graph. Questions whose
// owning video is absent from videos still contribute edges; their node is
// simply not in the graph, which Validate reports.
func BuildGraph(videos []*types.Video, questions []*types.Question) *Graph {
	g := &Graph{nodes: make(map[uuid.UUID]struct{}, len(videos))}
	for _, v := range videos {
		if v != nil {
			g.nodes[v.ID] = struct{}{}
		}
	}
	for _, q := range questions {
		if q == nil {
			continue
		}
		for _, s := range q.Slots() {
			if s.IsEmpty() {
				continue
			}
			g.edges = append(g.edges, Edge{
				QuestionID: q.ID,
				VideoID:    q.VideoID,
				Slot:       s.Label,
				Target:     s.TargetVideoID,
			})
		}
	}
	return g
}

// HasNode reports whether a video id is a node of the graph.
func (g *Graph) HasNode(id uuid.UUID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Edges returns every labeled edge of the graph.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of video nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Validate reports every dangling redirect: edges whose explicit target is
// not a node. Nil targets resolve to the owning video and are never
// dangling. The report is advisory; playback tolerates dangling edges.
func (g *Graph) Validate() []Dangling {
	var out []Dangling
	for _, e := range g.edges {
		if e.Target == nil {
			continue
		}
		if !g.HasNode(*e.Target) {
			out = append(out, Dangling{QuestionID: e.QuestionID, Slot: e.Slot, Target: *e.Target})
		}
	}
	return out
}

// SortQuestions orders questions the way playback presents them: pose_time
// ascending, ties broken by id ascending so the order is deterministic.
func SortQuestions(questions []*types.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].PoseTime != questions[j].PoseTime {
			return questions[i].PoseTime < questions[j].PoseTime
		}
		return bytes.Compare(questions[i].ID[:], questions[j].ID[:]) < 0
	})
}
