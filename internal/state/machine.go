package state

// Machine is a pushdown automaton of game states. The top of the stack is
// the active state.
type Machine struct {
	initial State
	stack   []State
	running bool
}

// NewMachine creates a stopped machine that will start with initial.
func NewMachine(initial State) *Machine {
	return &Machine{initial: initial}
}

// Start pushes the initial state and calls its OnStart. Starting a running
// or already-used machine does nothing.
func (m *Machine) Start(ctx *Context) {
	if m.running || m.initial == nil {
		return
	}
	m.stack = append(m.stack, m.initial)
	m.initial = nil
	m.running = true
	m.stack[0].OnStart(ctx)
}

// Running reports whether any state is still on the stack.
func (m *Machine) Running() bool {
	return m.running
}

// Depth returns the number of stacked states.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// HandleEvent forwards ev to the active state and applies its transition.
func (m *Machine) HandleEvent(ctx *Context, ev Event) {
	if !m.running {
		return
	}
	m.transition(ctx, m.top().HandleEvent(ctx, ev))
}

// Update runs the active state for one frame and applies its transition.
func (m *Machine) Update(ctx *Context) {
	if !m.running {
		return
	}
	m.transition(ctx, m.top().Update(ctx))
}

// Stop calls OnStop on every state, top first, and empties the stack.
func (m *Machine) Stop(ctx *Context) {
	if !m.running {
		return
	}
	for len(m.stack) > 0 {
		m.pop().OnStop(ctx)
	}
	m.running = false
}

func (m *Machine) top() State {
	return m.stack[len(m.stack)-1]
}

func (m *Machine) pop() State {
	s := m.top()
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	return s
}

func (m *Machine) transition(ctx *Context, t Trans) {
	switch t.Kind {
	case TransNone:
	case TransQuit:
		m.Stop(ctx)
	case TransPush:
		if t.State == nil {
			return
		}
		m.top().OnPause(ctx)
		m.stack = append(m.stack, t.State)
		t.State.OnStart(ctx)
	case TransPop:
		m.pop().OnStop(ctx)
		if len(m.stack) == 0 {
			m.running = false
			return
		}
		m.top().OnResume(ctx)
	case TransSwitch:
		if t.State == nil {
			return
		}
		m.pop().OnStop(ctx)
		m.stack = append(m.stack, t.State)
		t.State.OnStart(ctx)
	}
}
