package state

import (
	"reflect"
	"testing"
)

// recorder logs every hook call and returns queued transitions from Update.
type recorder struct {
	Simple
	name    string
	calls   *[]string
	updates []Trans
	onEvent Trans
}

func (r *recorder) OnStart(*Context)  { *r.calls = append(*r.calls, r.name+".start") }
func (r *recorder) OnStop(*Context)   { *r.calls = append(*r.calls, r.name+".stop") }
func (r *recorder) OnPause(*Context)  { *r.calls = append(*r.calls, r.name+".pause") }
func (r *recorder) OnResume(*Context) { *r.calls = append(*r.calls, r.name+".resume") }

func (r *recorder) HandleEvent(*Context, Event) Trans { return r.onEvent }

func (r *recorder) Update(*Context) Trans {
	if len(r.updates) == 0 {
		return None()
	}
	t := r.updates[0]
	r.updates = r.updates[1:]
	return t
}

func TestSimpleStateIsInert(t *testing.T) {
	m := NewMachine(Simple{})
	ctx := &Context{}
	m.Start(ctx)
	for i := 0; i < 10; i++ {
		m.HandleEvent(ctx, Event{Kind: EventFocusLost})
		m.Update(ctx)
	}
	if !m.Running() || m.Depth() != 1 {
		t.Errorf("Running() = %v, Depth() = %d, expected a single running state", m.Running(), m.Depth())
	}
}

func TestMachineTransitions(t *testing.T) {
	var calls []string
	b := &recorder{name: "b", calls: &calls, updates: []Trans{Pop()}}
	c := &recorder{name: "c", calls: &calls}
	a := &recorder{name: "a", calls: &calls, updates: []Trans{Push(b), Switch(c)}}

	m := NewMachine(a)
	ctx := &Context{}
	m.Start(ctx)
	m.Update(ctx) // a pushes b
	if m.Depth() != 2 {
		t.Fatalf("Depth() after push = %d, expected 2", m.Depth())
	}
	m.Update(ctx) // b pops
	m.Update(ctx) // a switches to c
	m.Update(ctx) // c idles
	m.Stop(ctx)

	want := []string{
		"a.start",
		"a.pause", "b.start",
		"b.stop", "a.resume",
		"a.stop", "c.start",
		"c.stop",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v\nexpected %v", calls, want)
	}
	if m.Running() {
		t.Error("Running() = true after Stop")
	}
}

func TestMachineQuitStopsAllTopFirst(t *testing.T) {
	var calls []string
	b := &recorder{name: "b", calls: &calls, updates: []Trans{Quit()}}
	a := &recorder{name: "a", calls: &calls, updates: []Trans{Push(b)}}

	m := NewMachine(a)
	ctx := &Context{}
	m.Start(ctx)
	m.Update(ctx)
	m.Update(ctx)

	want := []string{"a.start", "a.pause", "b.start", "b.stop", "a.stop"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v\nexpected %v", calls, want)
	}
	if m.Running() || m.Depth() != 0 {
		t.Errorf("Running() = %v, Depth() = %d after quit", m.Running(), m.Depth())
	}
}

func TestMachinePopLastStateStops(t *testing.T) {
	var calls []string
	a := &recorder{name: "a", calls: &calls, updates: []Trans{Pop()}}
	m := NewMachine(a)
	ctx := &Context{}
	m.Start(ctx)
	m.Update(ctx)

	if m.Running() {
		t.Error("Running() = true after popping the last state")
	}
	// Further calls are no-ops.
	m.Update(ctx)
	m.Stop(ctx)
	if want := []string{"a.start", "a.stop"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, expected %v", calls, want)
	}
}

func TestMachineEventTransition(t *testing.T) {
	var calls []string
	a := &recorder{name: "a", calls: &calls, onEvent: Quit()}
	m := NewMachine(a)
	ctx := &Context{}
	m.Start(ctx)
	m.HandleEvent(ctx, Event{Kind: EventCloseRequested})
	if m.Running() {
		t.Error("Running() = true after the state quit on an event")
	}
}

func TestMachineStartOnce(t *testing.T) {
	var calls []string
	a := &recorder{name: "a", calls: &calls}
	m := NewMachine(a)
	ctx := &Context{}
	m.Start(ctx)
	m.Start(ctx)
	m.Stop(ctx)
	m.Start(ctx)
	if want := []string{"a.start", "a.stop"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, expected %v", calls, want)
	}
}

func TestMachineIgnoresNilTargets(t *testing.T) {
	var calls []string
	a := &recorder{name: "a", calls: &calls, updates: []Trans{Push(nil), Switch(nil)}}
	m := NewMachine(a)
	ctx := &Context{}
	m.Start(ctx)
	m.Update(ctx)
	m.Update(ctx)
	if m.Depth() != 1 || len(calls) != 1 {
		t.Errorf("Depth() = %d, calls = %v, expected nil targets to be ignored", m.Depth(), calls)
	}
}
