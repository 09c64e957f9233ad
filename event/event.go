////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package event

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// Level indicates how a Notice should be presented to the user.
type Level int

const (
	// Info notices are informational and may be dropped by the UI.
	Info Level = iota

	// Warning notices should be shown to the user once.
	Warning
)

// String stringer interface implementation.
func (l Level) String() string {
	switch l {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	default:
		return fmt.Sprintf("UnknownLevel(%d)", int(l))
	}
}

// Notice is a single non-fatal, user-visible message. All error handling in
// the core degrades to safe values; notices are the only way failures are
// surfaced to the user.
type Notice struct {
	Level   Level
	Source  string
	Message string
}

// String stringer interface implementation.
func (n Notice) String() string {
	return fmt.Sprintf("Notice(%s, %s, %s)", n.Level, n.Source, n.Message)
}

// Callback receives notices reported to the Manager.
type Callback func(n Notice)

// Manager fans notices out to registered callbacks on its own goroutine so
// that reporters never block on UI work.
type Manager struct {
	noticeCh chan Notice
	cbs      sync.Map
	quit     chan struct{}
	once     sync.Once
}

// NewManager creates a notice Manager and starts its handler routine.
func NewManager() *Manager {
	m := &Manager{
		noticeCh: make(chan Notice, 100),
		quit:     make(chan struct{}),
	}
	go m.handler()
	return m
}

// Notify reports a notice from the given source. If the queue is full the
// notice is logged and dropped rather than blocking the caller.
func (m *Manager) Notify(level Level, source, format string, args ...interface{}) {
	n := Notice{
		Level:   level,
		Source:  source,
		Message: fmt.Sprintf(format, args...),
	}
	select {
	case m.noticeCh <- n:
		jww.TRACE.Printf("Notice reported: %s", n)
	default:
		jww.ERROR.Printf("Notice queue full, unable to report: %s", n)
	}
}

// Register records the given function to receive notices. It returns an error
// if a callback is already registered under name.
func (m *Manager) Register(name string, cb Callback) error {
	_, exists := m.cbs.LoadOrStore(name, cb)
	if exists {
		return errors.Errorf(
			"callback %q already registered with notice manager", name)
	}
	return nil
}

// Unregister deletes the callback registered under name.
func (m *Manager) Unregister(name string) {
	m.cbs.Delete(name)
}

// Stop shuts down the handler routine. Notices reported after Stop are
// dropped.
func (m *Manager) Stop() {
	m.once.Do(func() { close(m.quit) })
}

// handler delivers notices to every registered callback.
func (m *Manager) handler() {
	jww.DEBUG.Print("notice handler routine started")
	for {
		select {
		case <-m.quit:
			jww.DEBUG.Print("stopping notice handler")
			return
		case n := <-m.noticeCh:
			jww.TRACE.Printf("Received notice: %s", n)
			m.cbs.Range(func(name, cb interface{}) bool {
				cb.(Callback)(n)
				return true
			})
		}
	}
}
