package callback

import "github.com/san-kum/dynstep/internal/dynamo"

// Group invokes its members in order, threading the same integrator through
// each. A group is itself a Handler, so groups nest.
type Group struct {
	members []Handler
}

// NewGroup copies members; nil members are skipped.
func NewGroup(members ...Handler) *Group {
	g := &Group{members: make([]Handler, 0, len(members))}
	for _, m := range members {
		if m != nil {
			g.members = append(g.members, m)
		}
	}
	return g
}

func (g *Group) Invoke(iter int, in *dynamo.Integrator) *dynamo.Integrator {
	for _, m := range g.members {
		in = m.Invoke(iter, in)
	}
	return in
}

func (g *Group) Len() int         { return len(g.members) }
func (g *Group) At(i int) Handler { return g.members[i] }
