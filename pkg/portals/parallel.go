package portals

import (
	"runtime"
	"sync"
)

// PlanAll builds a plan for every portal, spread over GOMAXPROCS workers.
// Plans come back in the order of portals.
func PlanAll(b Boundary, portals []Portal) []Plan {
	plans := make([]Plan, len(portals))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(portals) {
		workers = len(portals)
	}

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := w; i < len(portals); i += workers {
				plans[i] = BuildPlan(b, portals[i])
			}
		}(w)
	}

	wg.Wait()

	return plans
}
