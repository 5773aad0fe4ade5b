// Package wakelock keeps the display awake while the frame is running by
// holding an org.freedesktop.ScreenSaver inhibition on the session bus.
package wakelock

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService   = "org.freedesktop.ScreenSaver"
	screenSaverPath      = "/org/freedesktop/ScreenSaver"
	inhibitMethod        = screenSaverService + ".Inhibit"
	unInhibitMethod      = screenSaverService + ".UnInhibit"
	inhibitReason        = "Displaying artwork"
	inhibitApplicationID = "artframe"
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// ScreenSaverLock inhibits the desktop screensaver while held. Acquire and
// Release tolerate repeated calls; an Acquire while already held is a
// no-op.
type ScreenSaverLock struct {
	mu     sync.Mutex
	logger LoggerFunc

	conn   *dbus.Conn
	cookie uint32
	held   bool
}

// New returns an unheld lock.
func New(logger LoggerFunc) *ScreenSaverLock {
	return &ScreenSaverLock{logger: logger}
}

func (s *ScreenSaverLock) logMessage(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger(fmt.Sprintf(format, args...))
	}
}

// Acquire asks the session screensaver service to hold off. The returned
// error is informational; the frame runs fine without the inhibition.
func (s *ScreenSaverLock) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return nil
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus unavailable: %w", err)
	}

	obj := conn.Object(screenSaverService, dbus.ObjectPath(screenSaverPath))
	var cookie uint32
	call := obj.Call(inhibitMethod, 0, inhibitApplicationID, inhibitReason)
	if call.Err != nil {
		conn.Close()
		return fmt.Errorf("screensaver inhibit failed: %w", call.Err)
	}
	if err := call.Store(&cookie); err != nil {
		conn.Close()
		return fmt.Errorf("screensaver inhibit returned no cookie: %w", err)
	}

	s.conn = conn
	s.cookie = cookie
	s.held = true
	s.logMessage("Screen wake lock acquired (cookie %d)", cookie)
	return nil
}

// Release drops the inhibition if held.
func (s *ScreenSaverLock) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held {
		return
	}

	obj := s.conn.Object(screenSaverService, dbus.ObjectPath(screenSaverPath))
	if call := obj.Call(unInhibitMethod, 0, s.cookie); call.Err != nil {
		s.logMessage("Screen wake lock release failed: %v", call.Err)
	} else {
		s.logMessage("Screen wake lock released")
	}
	s.conn.Close()
	s.conn = nil
	s.held = false
}
