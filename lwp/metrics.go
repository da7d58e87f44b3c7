package lwp

// Metrics is a point-in-time snapshot of the runtime's queue depths.
// Unlike the teacher's eventloop.Metrics (which guards concurrent
// goroutines with mutexes and streaming percentile estimators), the LWP
// runtime is single-threaded by design: there is never a concurrent
// writer, so Metrics is a plain value type, populated fresh on every
// call to Runtime.Metrics.
type Metrics struct {
	// Ready is the active scheduler's current ready-set size (Qlen).
	Ready int
	// Zombies is the number of terminated, unreaped threads.
	Zombies int
	// BlockedJoiners is the number of threads suspended in Wait.
	BlockedJoiners int
	// Registered is the total size of the global registry (live + zombie).
	Registered int
}

// Metrics returns a snapshot of the runtime's current queue depths, or
// the zero Metrics if WithMetrics was never enabled for this Runtime:
// collection is opt-in, off by default.
func (rt *Runtime) Metrics() Metrics {
	if !rt.opts.metricsEnabled {
		return Metrics{}
	}

	registered := 0
	for t := rt.registryHead; t != nil; t = t.registryNext {
		registered++
	}

	return Metrics{
		Ready:          rt.scheduler.Qlen(),
		Zombies:        listLen(rt.zombieHead),
		BlockedJoiners: listLen(rt.blockedHead),
		Registered:     registered,
	}
}

func listLen(head *Thread) int {
	n := 0
	for t := head; t != nil; t = t.listNext {
		n++
	}
	return n
}
