package graph

import (
	"sort"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Overlay contains run data to visualize on the diagram.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromPath marks every state on an accepting path as visited and the
// last one as current.
func OverlayFromPath(path []domain.Snapshot) *Overlay {
	if len(path) == 0 {
		return nil
	}
	o := &Overlay{}
	for _, s := range path {
		o.VisitedStates = append(o.VisitedStates, string(s.State))
	}
	o.CurrentState = string(path[len(path)-1].State)
	return o
}

type edge struct {
	from, to string
	labels   []string
}

// groupEdges merges parallel transitions into one edge per (from, to) pair.
// Edges are ordered by source state declaration, then by first appearance.
func groupEdges(def *domain.Definition, label func(domain.TransitionSpec) string) []edge {
	order := make(map[string]int, len(def.States))
	for i, s := range def.States {
		if _, ok := order[s]; !ok {
			order[s] = i
		}
	}

	index := make(map[[2]string]int)
	var edges []edge
	for _, t := range def.Transitions {
		key := [2]string{t.From, t.To}
		if i, ok := index[key]; ok {
			edges[i].labels = append(edges[i].labels, label(t))
			continue
		}
		index[key] = len(edges)
		edges = append(edges, edge{from: t.From, to: t.To, labels: []string{label(t)}})
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return order[edges[i].from] < order[edges[j].from]
	})
	return edges
}

func visitedSet(o *Overlay) map[string]bool {
	set := make(map[string]bool)
	if o == nil {
		return set
	}
	for _, s := range o.VisitedStates {
		set[s] = true
	}
	return set
}
