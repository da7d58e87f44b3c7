package sched

// node is the round-robin scheduler's own intrusive list entry.
//
// spec.md gives each scheduler two private link slots on the thread
// descriptor itself; here the scheduler lives in a separate package from
// the descriptor, so there is nowhere to stash a private field on a
// foreign type. A node wrapping the Schedulable is the package-local
// equivalent: it's still a single allocation per admitted thread, still a
// plain singly linked FIFO, just addressed by the node rather than by the
// descriptor.
type node struct {
	t    Schedulable
	next *node
}

// RoundRobin is the default scheduler: a single ready FIFO. Admit appends,
// Remove unlinks (O(n), per spec.md's explicit allowance), and Next returns
// the head and rotates it to the tail when at least two threads are ready.
// Next additionally skips and unlinks any head that is no longer Live, as a
// safety net against a misbehaving caller.
type RoundRobin struct {
	head, tail *node
	count      int
}

var _ Scheduler = (*RoundRobin)(nil)

// NewRoundRobin constructs an empty round-robin scheduler.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Init is a no-op; RoundRobin has no setup beyond zero-value construction.
func (r *RoundRobin) Init() {}

// Shutdown drops the ready queue. The runtime is responsible for having
// already drained it (via SetScheduler) before calling Shutdown.
func (r *RoundRobin) Shutdown() {
	r.head, r.tail, r.count = nil, nil, 0
}

// Admit appends t to the tail of the ready FIFO. Non-live threads are
// never admitted.
func (r *RoundRobin) Admit(t Schedulable) {
	if t == nil || !t.Live() {
		return
	}
	n := &node{t: t}
	if r.tail == nil {
		r.head, r.tail = n, n
	} else {
		r.tail.next = n
		r.tail = n
	}
	r.count++
}

// Remove unlinks t from the ready FIFO if present.
func (r *RoundRobin) Remove(t Schedulable) {
	var prev *node
	for cur := r.head; cur != nil; cur = cur.next {
		if cur.t == t {
			r.unlink(prev, cur)
			return
		}
		prev = cur
	}
}

func (r *RoundRobin) unlink(prev, cur *node) {
	if prev == nil {
		r.head = cur.next
	} else {
		prev.next = cur.next
	}
	if r.tail == cur {
		r.tail = prev
	}
	cur.next = nil
	r.count--
}

// Next returns the head of the ready FIFO, rotating it to the tail when
// more than one thread remains ready. Dead heads are skipped and dropped.
func (r *RoundRobin) Next() Schedulable {
	for r.head != nil && !r.head.t.Live() {
		dead := r.head
		r.unlink(nil, dead)
	}
	if r.head == nil {
		return nil
	}

	selected := r.head
	if r.head != r.tail {
		r.head = selected.next
		selected.next = nil
		r.tail.next = selected
		r.tail = selected
	}
	return selected.t
}

// Qlen returns the number of threads currently ready.
func (r *RoundRobin) Qlen() int {
	return r.count
}
