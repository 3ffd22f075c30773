// Package state defines game states and the stack machine that drives them.
package state

import (
	"time"

	"github.com/charmbracelet/log"
)

// Context is handed to every state hook.
type Context struct {
	Frame  uint64
	Delta  time.Duration
	Logger *log.Logger
}

// State is one unit of per-frame game behaviour.
type State interface {
	OnStart(ctx *Context)
	OnStop(ctx *Context)
	OnPause(ctx *Context)
	OnResume(ctx *Context)
	HandleEvent(ctx *Context, ev Event) Trans
	Update(ctx *Context) Trans
}

// Simple implements State with no behaviour. Embed it and override the
// hooks a state cares about.
type Simple struct{}

func (Simple) OnStart(*Context) {}
func (Simple) OnStop(*Context) {}
func (Simple) OnPause(*Context) {}
func (Simple) OnResume(*Context) {}
func (Simple) HandleEvent(*Context, Event) Trans { return None() }
func (Simple) Update(*Context) Trans { return None() }

// EventKind discriminates window events.
type EventKind int

const (
	EventCloseRequested EventKind = iota
	EventResized
	EventFocusGained
	EventFocusLost
)

func (k EventKind) String() string {
	switch k {
	case EventCloseRequested:
		return "close_requested"
	case EventResized:
		return "resized"
	case EventFocusGained:
		return "focus_gained"
	case EventFocusLost:
		return "focus_lost"
	default:
		return "unknown"
	}
}

// Event is a window event delivered to the active state.
type Event struct {
	Kind          EventKind
	Width, Height int // set for EventResized
}

// TransKind discriminates state transitions.
type TransKind int

const (
	TransNone TransKind = iota
	TransQuit
	TransPush
	TransPop
	TransSwitch
)

// Trans is a transition requested by a state.
type Trans struct {
	Kind  TransKind
	State State // target for Push and Switch
}

func None() Trans { return Trans{Kind: TransNone} }
func Quit() Trans { return Trans{Kind: TransQuit} }
func Pop() Trans { return Trans{Kind: TransPop} }
func Push(s State) Trans { return Trans{Kind: TransPush, State: s} }
func Switch(s State) Trans { return Trans{Kind: TransSwitch, State: s} }
