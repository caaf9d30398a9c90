package strategy

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/dVakulen/tinkerpop/pkg/errors"
)

// resolve orders strategies by category and, within a category, topologically by their
// prior/post constraints. Ties are broken by registration order. Constraints naming a
// strategy that is not registered in the same category are ignored.
func resolve(strategies []Strategy) ([]Strategy, error) {
	ordered := make([]Strategy, 0, len(strategies))
	for _, c := range Categories {
		var members []Strategy
		for _, s := range strategies {
			if s.Category() == c {
				members = append(members, s)
			}
		}

		sorted, err := sortCategory(c, members)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, sorted...)
	}
	return ordered, nil
}

func sortCategory(c Category, members []Strategy) ([]Strategy, error) {
	if len(members) == 0 {
		return nil, nil
	}

	// node ids are registration indexes
	g := simple.NewDirectedGraph()
	index := make(map[string]int64, len(members))
	for i, s := range members {
		g.AddNode(simple.Node(i))
		index[s.Name()] = int64(i)
	}

	var selfCycles [][]string
	addEdge := func(from, to int64) {
		if from == to {
			selfCycles = append(selfCycles, []string{members[from].Name()})
			return
		}
		g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
	}
	for i, s := range members {
		for _, prior := range s.ApplyPrior() {
			if j, ok := index[prior]; ok {
				addEdge(j, int64(i))
			}
		}
		for _, post := range s.ApplyPost() {
			if j, ok := index[post]; ok {
				addEdge(int64(i), j)
			}
		}
	}
	if len(selfCycles) > 0 {
		return nil, &errors.ConfigurationError{Category: c.String(), Cycles: selfCycles}
	}

	inDegree := make([]int, len(members))
	for i := range members {
		inDegree[i] = g.To(int64(i)).Len()
	}

	done := make([]bool, len(members))
	sorted := make([]Strategy, 0, len(members))
	for len(sorted) < len(members) {
		next := -1
		for i := range members {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, &errors.ConfigurationError{Category: c.String(), Cycles: cycles(g, members)}
		}

		done[next] = true
		sorted = append(sorted, members[next])
		successors := g.From(int64(next))
		for successors.Next() {
			inDegree[successors.Node().ID()]--
		}
	}
	return sorted, nil
}

// cycles returns the names of the members of every non-trivial strongly connected
// component, in registration order.
func cycles(g graph.Directed, members []Strategy) [][]string {
	var out [][]string
	for _, component := range topo.TarjanSCC(g) {
		if len(component) < 2 {
			continue
		}
		ids := make([]int64, 0, len(component))
		for _, n := range component {
			ids = append(ids, n.ID())
		}
		slices.Sort(ids)

		names := make([]string, 0, len(ids))
		for _, id := range ids {
			names = append(names, members[id].Name())
		}
		out = append(out, names)
	}
	slices.SortFunc(out, func(a, b []string) int {
		return slices.Index(namesOf(members), a[0]) - slices.Index(namesOf(members), b[0])
	})
	return out
}

func namesOf(strategies []Strategy) []string {
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Name())
	}
	return names
}
