// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

// Dependencies returns the ids of the steps s depends on, in first
// reference order. Constructor arguments, call arguments and call targets
// all create edges. Calls may reference s itself since they run after the
// deployment; a constructor self reference is kept and reported as a cycle.
func (s *Step) Dependencies() []string {
	var deps []string
	seen := map[string]bool{}
	add := func(id string, allowSelf bool) {
		if seen[id] || (allowSelf && id == s.ID) {
			return
		}
		seen[id] = true
		deps = append(deps, id)
	}
	for _, a := range s.Args {
		for _, ref := range a.StepRefs() {
			add(ref, false)
		}
	}
	for _, c := range s.Calls {
		if c.Target != "" {
			add(c.Target, true)
		}
		for _, a := range c.Args {
			for _, ref := range a.StepRefs() {
				add(ref, true)
			}
		}
	}
	return deps
}

// Order validates the plan and returns its steps in execution order: every
// step follows all of its dependencies, and independent steps keep their
// declaration order.
func (p *Plan) Order() ([]*Step, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(p.Steps))
	for i, s := range p.Steps {
		index[s.ID] = i
	}
	deps := make([][]int, len(p.Steps))
	dependents := make([][]int, len(p.Steps))
	pending := make([]int, len(p.Steps))
	for i := range p.Steps {
		for _, d := range p.Steps[i].Dependencies() {
			j := index[d]
			deps[i] = append(deps[i], j)
			dependents[j] = append(dependents[j], i)
			pending[i]++
		}
	}

	order := make([]*Step, 0, len(p.Steps))
	done := make([]bool, len(p.Steps))
	for len(order) < len(p.Steps) {
		next := -1
		// lowest declaration index among the ready steps
		for i := range p.Steps {
			if !done[i] && pending[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, &CyclicDependencyError{Cycle: p.findCycle(deps, done)}
		}
		done[next] = true
		order = append(order, &p.Steps[next])
		for _, d := range dependents[next] {
			pending[d]--
		}
	}
	return order, nil
}

// findCycle walks dependency edges among the unscheduled steps until a step
// repeats on the current path.
func (p *Plan) findCycle(deps [][]int, done []bool) []string {
	const (
		unvisited = iota
		onPath
		finished
	)
	state := make([]int, len(p.Steps))
	var path []int
	var cycle []string

	var visit func(i int) bool
	visit = func(i int) bool {
		state[i] = onPath
		path = append(path, i)
		for _, d := range deps[i] {
			if done[d] {
				continue
			}
			switch state[d] {
			case onPath:
				start := 0
				for k, n := range path {
					if n == d {
						start = k
						break
					}
				}
				for _, n := range path[start:] {
					cycle = append(cycle, p.Steps[n].ID)
				}
				cycle = append(cycle, p.Steps[d].ID)
				return true
			case unvisited:
				if visit(d) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		state[i] = finished
		return false
	}

	for i := range p.Steps {
		if !done[i] && state[i] == unvisited && visit(i) {
			return cycle
		}
	}
	return nil
}
