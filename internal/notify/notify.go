// Package notify is the boundary through which document composition reports
// success and validation failures to whoever presents them to the user.
package notify

import (
	"fmt"
	"log"
	"sync"
)

// Severity classifies a notification.
type Severity int

const (
	Success Severity = iota
	Failure
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a short message for the user.
type Notification struct {
	Severity Severity `json:"-"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

// Observer receives notifications.
type Observer interface {
	Notify(n Notification)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(n Notification)

// Notify calls f(n).
func (f ObserverFunc) Notify(n Notification) { f(n) }

// LogObserver writes notifications to a logger. Failures carry a
// "Warning:" prefix.
type LogObserver struct {
	Logger *log.Logger
}

// Notify implements Observer.
func (o LogObserver) Notify(n Notification) {
	logf := log.Printf
	if o.Logger != nil {
		logf = o.Logger.Printf
	}
	if n.Severity == Failure {
		logf("Warning: %s", n)
		return
	}
	logf("%s", n)
}

// Recorder keeps every notification it receives. It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

// Notify implements Observer.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}, false
	}
	return r.all[len(r.all)-1], true
}

// Multi fans a notification out to several observers in order. Nil
// observers are skipped.
type Multi []Observer

// Notify implements Observer.
func (m Multi) Notify(n Notification) {
	for _, o := range m {
		if o != nil {
			o.Notify(n)
		}
	}
}
