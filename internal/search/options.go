package search

// Option configures a Solver.
type Option func(*config)

type config struct {
	pruning     bool
	workers     int
	maxDepth    int
	onIteration func(Iteration)
}

func defaultConfig() *config {
	return &config{
		pruning: true,
		workers: 1,
	}
}

// WithPruning enables or disables successor pruning.
// When enabled (default), a face never follows itself and opposite faces
// are only tried in one order. Disabling it explores all 18 moves at
// every node, which is only useful for checking the pruned search.
func WithPruning(enabled bool) Option {
	return func(c *config) {
		c.pruning = enabled
	}
}

// WithWorkers sets how many root subtrees are searched at once.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithMaxDepth makes Solve give up with ErrDepthLimit once the cost
// limit would exceed depth. Zero means no limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithIterationHook registers a callback run after every iteration.
func WithIterationHook(fn func(Iteration)) Option {
	return func(c *config) {
		c.onIteration = fn
	}
}
