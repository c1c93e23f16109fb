package editor

// Queue holds tasks that must run once the current event has been handled,
// before the next one starts.
type Queue struct {
	tasks []func()
}

// Defer schedules fn for the next Flush.
func (q *Queue) Defer(fn func()) {
	q.tasks = append(q.tasks, fn)
}

// Flush runs the pending tasks in the order they were deferred and returns
// how many ran. Tasks deferred while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	tasks := q.tasks
	q.tasks = nil
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}
