package waypoint

import "slices"

// FindRoute returns the shortest hop route from start to goal, both
// included, using breadth-first search over g.
//
// An empty route means there is nothing to walk: either start already is
// goal or goal cannot be reached. Nodes without an adjacency entry simply
// have no neighbors. Among routes of equal length the one found first, by
// neighbor insertion order, is returned.
func FindRoute(g Neighborer, start, goal int) []int {
	if start == goal {
		return nil
	}

	parent := map[int]int{start: start}
	queue := []int{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nbr := range g.Neighbors(id) {
			if _, seen := parent[nbr]; seen {
				continue
			}
			parent[nbr] = id
			if nbr == goal {
				return backtrack(parent, start, goal)
			}
			queue = append(queue, nbr)
		}
	}
	return nil
}

// backtrack rebuilds the route ending at goal from the BFS parent links.
func backtrack(parent map[int]int, start, goal int) []int {
	route := []int{goal}
	for id := goal; id != start; {
		id = parent[id]
		route = append(route, id)
	}
	slices.Reverse(route)
	return route
}
