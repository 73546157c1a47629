package gitlet

import (
	"fmt"
	"sort"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
)

// depthMap contains the distance between a commit and its ancestors,
// indexed by the hex ID of the ancestors
type depthMap map[string]int

// graph computes the ancestors of commits. The depth maps of the
// visited commits are kept in memory
type graph struct {
	r   *Repository
	rel map[string]depthMap
}

func (r *Repository) newGraph() *graph {
	return &graph{
		r:   r,
		rel: map[string]depthMap{},
	}
}

// ancestorDepths returns the commit and all its ancestors, with their
// distance from the commit.
// An ancestor reachable by more than one path keeps the distance of
// the path visited last: at each commit the ancestors of the first
// parent are visited, then the ones of the second parent.
// This means the distance is not always the shortest one
func (g *graph) ancestorDepths(c *object.Commit) (depthMap, error) {
	id := c.ID().String()
	if m, ok := g.rel[id]; ok {
		return m, nil
	}

	m := depthMap{id: 0}
	for _, parentID := range c.ParentIDs() {
		parent, err := g.r.commit(parentID)
		if err != nil {
			return nil, fmt.Errorf("could not load parent of %s: %w", id, err)
		}
		ancestors, err := g.ancestorDepths(parent)
		if err != nil {
			return nil, err
		}
		for ancestor, depth := range ancestors {
			m[ancestor] = depth + 1
		}
	}
	g.rel[id] = m
	return m, nil
}

// splitPoint returns the ancestor shared by a and b that is the
// closest to a. Ties are broken by ID
func (g *graph) splitPoint(a, b *object.Commit) (*object.Commit, error) {
	da, err := g.ancestorDepths(a)
	if err != nil {
		return nil, err
	}
	db, err := g.ancestorDepths(b)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(da))
	for id := range da {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	for _, id := range ids {
		if _, ok := db[id]; !ok {
			continue
		}
		if best == "" || da[id] < da[best] {
			best = id
		}
	}
	// Every commit descends from the initial commit so this
	// should never happen
	if best == "" {
		return nil, fmt.Errorf("%s and %s have no common ancestor: %w", a.ID().String(), b.ID().String(), ErrCommitNotFound)
	}
	oid, err := g.r.hash.ConvertFromString(best)
	if err != nil {
		return nil, fmt.Errorf("invalid oid %s: %w", best, err)
	}
	return g.r.commit(oid)
}

// SplitPoint returns the common ancestor of two commits that is the
// closest to the first one, according to the distances returned by
// AncestorDepths
func (r *Repository) SplitPoint(a, b githash.Oid) (*object.Commit, error) {
	ca, err := r.commit(a)
	if err != nil {
		return nil, err
	}
	cb, err := r.commit(b)
	if err != nil {
		return nil, err
	}
	return r.newGraph().splitPoint(ca, cb)
}

// AncestorDepths returns the given commit and all its ancestors,
// indexed by hex ID, with their distance from the commit.
// When an ancestor can be reached using different paths, the distance
// comes from the last path visited, second parents being visited
// after first parents
func (r *Repository) AncestorDepths(oid githash.Oid) (map[string]int, error) {
	c, err := r.commit(oid)
	if err != nil {
		return nil, err
	}
	m, err := r.newGraph().ancestorDepths(c)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(m))
	for id, depth := range m {
		out[id] = depth
	}
	return out, nil
}
