package sectiondata

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

// Group is the set of queries one view depends on.
type Group struct {
	queries []*Query
}

// NewGroup creates one query per section.
func (c *Client) NewGroup(sections ...Section) *Group {
	g := &Group{queries: make([]*Query, 0, len(sections))}
	for _, s := range sections {
		g.queries = append(g.queries, c.NewQuery(s))
	}
	return g
}

// Query returns the member fetching section, or nil.
func (g *Group) Query(section Section) *Query {
	for _, q := range g.queries {
		if q.Section() == section {
			return q
		}
	}
	return nil
}

// Queries returns the members in construction order.
func (g *Group) Queries() []*Query {
	out := make([]*Query, len(g.queries))
	copy(out, g.queries)
	return out
}

// Bind binds every member to user.
func (g *Group) Bind(user *rbac.User) {
	for _, q := range g.queries {
		q.Bind(user)
	}
}

// RefreshAll re-fetches every member and waits until they settle or ctx is
// done. Members fail independently: one error neither cancels nor rolls
// back the others. The returned error is the first member failure.
func (g *Group) RefreshAll(ctx context.Context) error {
	var eg errgroup.Group
	for _, q := range g.queries {
		eg.Go(func() error {
			q.Refresh()
			if err := q.Wait(ctx); err != nil {
				return err
			}
			return q.State().Err
		})
	}
	return eg.Wait()
}

// Wait blocks until no member is loading or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	for _, q := range g.queries {
		if err := q.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Loading reports whether any member is loading.
func (g *Group) Loading() bool {
	for _, q := range g.queries {
		if q.State().Loading {
			return true
		}
	}
	return false
}

// Err returns the first member error in construction order.
func (g *Group) Err() error {
	for _, q := range g.queries {
		if err := q.State().Err; err != nil {
			return err
		}
	}
	return nil
}

// States snapshots every member keyed by section.
func (g *Group) States() map[Section]State {
	out := make(map[Section]State, len(g.queries))
	for _, q := range g.queries {
		out[q.Section()] = q.State()
	}
	return out
}

// Close closes every member.
func (g *Group) Close() {
	for _, q := range g.queries {
		q.Close()
	}
}
