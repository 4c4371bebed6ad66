package metamodel

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// topoSort returns node indices so that every node follows its dependencies.
//
// depsFn(i) yields the indices that must precede i. When several nodes are
// ready the smallest index goes first, so the order is deterministic.
// A cycle yields a *cycleError listing every node that could not be ordered.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("dependency index out of range: %d depends on %d", i, d))
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		var stuck []int

		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, i)
			}
		}

		return nil, &cycleError{nodes: stuck}
	}

	return order, nil
}

type cycleError struct {
	nodes []int
}

func (e *cycleError) Error() string {
	return fmt.Sprintf("cycle detected among nodes %v", e.nodes)
}
