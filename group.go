/*
Copyright © 2026 the Geoman authors.
This file is part of Geoman.

Geoman is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Geoman is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Geoman.  If not, see <http://www.gnu.org/licenses/>.
*/

package geoman

import (
	"sort"

	"github.com/google/uuid"
)

// groupTable records group membership as group ID → member IDs. Members
// may be shapes or other groups. Parents are found by querying the table;
// members keep no reference to their groups.
type groupTable struct {
	members map[string]map[string]struct{}
	order   map[string]int
}

func (g *groupTable) create() string {
	if g.members == nil {
		g.members = make(map[string]map[string]struct{})
		g.order = make(map[string]int)
	}
	id := uuid.NewString()
	g.members[id] = make(map[string]struct{})
	g.order[id] = len(g.order)
	return id
}

func (g *groupTable) exists(group string) bool {
	_, ok := g.members[group]
	return ok
}

func (g *groupTable) add(group, member string) {
	if group == member {
		return
	}
	if set, ok := g.members[group]; ok {
		set[member] = struct{}{}
	}
}

func (g *groupTable) remove(group, member string) {
	delete(g.members[group], member)
}

// parents returns the groups that directly contain id in creation order.
func (g *groupTable) parents(id string) []string {
	var out []string
	for group, set := range g.members {
		if _, ok := set[id]; ok {
			out = append(out, group)
		}
	}
	sort.Slice(out, func(i, j int) bool { return g.order[out[i]] < g.order[out[j]] })
	return out
}

// ancestors returns every group that contains id directly or through
// nested groups, nearest first.
func (g *groupTable) ancestors(id string) []string {
	seen := map[string]bool{id: true}
	var out []string
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range g.parents(cur) {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
			queue = append(queue, p)
		}
	}
	return out
}

// leaves returns the non-group members of group, including those of
// nested groups.
func (g *groupTable) leaves(group string) []string {
	seen := map[string]bool{group: true}
	var out []string
	var walk func(string)
	walk = func(id string) {
		for member := range g.members[id] {
			if seen[member] {
				continue
			}
			seen[member] = true
			if g.exists(member) {
				walk(member)
			} else {
				out = append(out, member)
			}
		}
	}
	walk(group)
	return out
}

// NewGroup creates a group containing the given shapes and returns its ID.
// Events fired on a member are also delivered to subscribers of the group.
func (m *Map) NewGroup(members ...*Shape) string {
	id := m.groups.create()
	for _, s := range members {
		m.groups.add(id, s.ID)
	}
	return id
}

// AddToGroup adds the shape or group with ID member to group.
func (m *Map) AddToGroup(group, member string) {
	m.groups.add(group, member)
}

// RemoveFromGroup removes member from group.
func (m *Map) RemoveFromGroup(group, member string) {
	m.groups.remove(group, member)
}

// Groups returns every group containing the shape or group with the given
// ID, directly or through nesting.
func (m *Map) Groups(id string) []string {
	return m.groups.ancestors(id)
}

// GroupShapes returns the shapes on the map that belong to group, in stamp
// order.
func (m *Map) GroupShapes(group string) []*Shape {
	var out []*Shape
	for _, id := range m.groups.leaves(group) {
		if s, ok := m.byID[id]; ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].stamp < out[j].stamp })
	return out
}
