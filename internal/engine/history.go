package engine

// History is a last-in-first-out stack of operation logs. Popping consumes
// the log: there is no redo.
//
// History is not safe for concurrent use.
type History struct {
	logs []OperationLog
}

// NewHistory creates a History holding logs, oldest first.
func NewHistory(logs ...OperationLog) *History {
	return &History{logs: append([]OperationLog(nil), logs...)}
}

// Push adds log on top of the stack.
func (h *History) Push(log OperationLog) {
	h.logs = append(h.logs, log)
}

// Pop removes and returns the most recent log.
func (h *History) Pop() (OperationLog, bool) {
	if len(h.logs) == 0 {
		return OperationLog{}, false
	}
	last := h.logs[len(h.logs)-1]
	h.logs = h.logs[:len(h.logs)-1]
	return last, true
}

// Peek returns the most recent log without removing it.
func (h *History) Peek() (OperationLog, bool) {
	if len(h.logs) == 0 {
		return OperationLog{}, false
	}
	return h.logs[len(h.logs)-1], true
}

// Len returns the number of logs on the stack.
func (h *History) Len() int {
	return len(h.logs)
}

// Logs returns a copy of the stack, oldest first.
func (h *History) Logs() []OperationLog {
	return append([]OperationLog(nil), h.logs...)
}
