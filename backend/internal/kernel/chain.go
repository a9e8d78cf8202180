package kernel

import (
	"fmt"
	"sort"
)

// buildChain produces the deterministic execution order for one command:
// the union of required rules and every rule whose CanApply holds,
// topologically sorted by prerequisites with ties broken by ascending
// priority and then by registration order.
func buildChain(reg *registry, gctx *GameContext, cmd *Command, required []string) ([]Rule, error) {
	selected := make(map[string]Rule)

	for _, name := range required {
		rule, ok := reg.rules[name]
		if !ok {
			return nil, fmt.Errorf("kernel: command %q requires unknown rule %q", cmd.Type, name)
		}
		selected[name] = rule
	}
	for name, rule := range reg.rules {
		if _, already := selected[name]; already {
			continue
		}
		if rule.CanApply(gctx, cmd) {
			selected[name] = rule
		}
	}

	for name, rule := range selected {
		for _, prereq := range rule.Prerequisites() {
			if _, ok := reg.rules[prereq]; !ok {
				return nil, fmt.Errorf("kernel: rule %q declares unknown prerequisite %q", name, prereq)
			}
		}
	}

	return topoSort(reg, selected)
}

// topoSort performs Kahn's algorithm over the selected subgraph. A
// prerequisite that exists in the registry but was not selected for this
// command is treated as already satisfied — it was skipped via CanApply,
// which the engine's invariant already allows.
func topoSort(reg *registry, selected map[string]Rule) ([]Rule, error) {
	indegree := make(map[string]int, len(selected))
	dependents := make(map[string][]string, len(selected))

	for name, rule := range selected {
		count := 0
		for _, prereq := range rule.Prerequisites() {
			if _, inSet := selected[prereq]; inSet {
				count++
				dependents[prereq] = append(dependents[prereq], name)
			}
		}
		indegree[name] = count
	}

	ready := make([]string, 0, len(selected))
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}

	ordered := make([]Rule, 0, len(selected))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			a, b := selected[ready[i]], selected[ready[j]]
			if a.Priority() != b.Priority() {
				return a.Priority() < b.Priority()
			}
			return reg.ruleOrder[ready[i]] < reg.ruleOrder[ready[j]]
		})

		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, selected[next])

		for _, dep := range dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(ordered) != len(selected) {
		return nil, fmt.Errorf("kernel: cycle detected in rule prerequisite graph")
	}
	return ordered, nil
}
