package layer

// CommandKind identifies a render-sync command.
type CommandKind int

const (
	AddShape CommandKind = iota
	RemoveShape
	LayerVisibility
)

func (k CommandKind) String() string {
	switch k {
	case AddShape:
		return "add-shape"
	case RemoveShape:
		return "remove-shape"
	case LayerVisibility:
		return "layer-visibility"
	}
	return "unknown"
}

// Command is emitted by a Layer whenever its render set changes.
type Command struct {
	Kind    CommandKind
	Layer   string
	Shape   *Shape // nil for LayerVisibility
	Visible bool
}

// CommandQueue buffers commands until the render side drains them.
type CommandQueue struct {
	cmds []Command
}

// Push appends c. Pushing onto a nil queue is a no-op.
func (q *CommandQueue) Push(c Command) {
	if q == nil {
		return
	}
	q.cmds = append(q.cmds, c)
}

// Drain returns and clears the pending commands in emission order.
func (q *CommandQueue) Drain() []Command {
	if q == nil {
		return nil
	}
	out := q.cmds
	q.cmds = nil
	return out
}

func (q *CommandQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.cmds)
}
