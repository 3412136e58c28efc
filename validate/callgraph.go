// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"slices"

	"github.com/gogpu/spvval/spirv"
)

// reachability maps every function to the entry points whose static call
// graph contains it.
type reachability struct {
	entryPoints map[uint32][]*entryPoint
	models      map[uint32][]spirv.ExecutionModel // sorted, unique
}

// computeReachability walks the call graph once per entry point. Recursion
// is terminated by the per-walk visited set.
func computeReachability(r *registry) *reachability {
	reach := &reachability{
		entryPoints: make(map[uint32][]*entryPoint),
		models:      make(map[uint32][]spirv.ExecutionModel),
	}
	for _, ep := range r.entryPoints {
		visited := map[uint32]bool{ep.function: true}
		queue := []uint32{ep.function}
		for len(queue) > 0 {
			fn := queue[0]
			queue = queue[1:]
			reach.entryPoints[fn] = append(reach.entryPoints[fn], ep)
			if !slices.Contains(reach.models[fn], ep.model) {
				reach.models[fn] = append(reach.models[fn], ep.model)
			}
			f := r.functions[fn]
			if f == nil {
				continue
			}
			for _, callee := range f.callees {
				if !visited[callee] {
					visited[callee] = true
					queue = append(queue, callee)
				}
			}
		}
	}
	for fn := range reach.models {
		slices.Sort(reach.models[fn])
	}
	return reach
}

func (r *registry) reachability() *reachability {
	if r.reach == nil {
		r.reach = computeReachability(r)
	}
	return r.reach
}

// reachingEntryPoints returns the entry points that can call fn, in
// declaration order.
func (r *registry) reachingEntryPoints(fn uint32) []*entryPoint {
	return r.reachability().entryPoints[fn]
}

// reachingModels returns the execution models under which fn can run.
func (r *registry) reachingModels(fn uint32) []spirv.ExecutionModel {
	return r.reachability().models[fn]
}
