package signature

import (
	"errors"
	"fmt"
)

// ErrUnknownEvent is returned by Dispatch for event types it does not handle.
var ErrUnknownEvent = errors.New("signature: unknown input event")

// EventType names a raw input event as delivered by a browser.
type EventType string

const (
	MouseDown   EventType = "mousedown"
	MouseMove   EventType = "mousemove"
	MouseUp     EventType = "mouseup"
	MouseLeave  EventType = "mouseleave"
	TouchStart  EventType = "touchstart"
	TouchMove   EventType = "touchmove"
	TouchEnd    EventType = "touchend"
	TouchCancel EventType = "touchcancel"
	ClearEvent  EventType = "clear"
)

// TouchPoint is one active touch.
type TouchPoint struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
}

// InputEvent is a mouse or touch event. Mouse events carry their position in
// ClientX/ClientY; touch events carry the active touches.
type InputEvent struct {
	Type    EventType    `json:"type"`
	ClientX float64      `json:"clientX,omitempty"`
	ClientY float64      `json:"clientY,omitempty"`
	Touches []TouchPoint `json:"touches,omitempty"`
}

func (e InputEvent) isTouch() bool {
	switch e.Type {
	case TouchStart, TouchMove, TouchEnd, TouchCancel:
		return true
	}
	return false
}

// Sample normalises the event to a PointerSample. Touch events use the
// first active touch only; a touch event without touches has no sample.
func (e InputEvent) Sample() (PointerSample, bool) {
	if e.isTouch() {
		if len(e.Touches) == 0 {
			return PointerSample{}, false
		}
		return PointerSample{X: e.Touches[0].ClientX, Y: e.Touches[0].ClientY}, true
	}
	return PointerSample{X: e.ClientX, Y: e.ClientY}, true
}

// Dispatch feeds one event to the surface.
func Dispatch(s *Surface, e InputEvent) error {
	switch e.Type {
	case MouseDown, TouchStart:
		if p, ok := e.Sample(); ok {
			s.Begin(p)
		}
	case MouseMove, TouchMove:
		if p, ok := e.Sample(); ok {
			s.Extend(p)
		}
	case MouseUp, MouseLeave, TouchEnd, TouchCancel:
		s.End()
	case ClearEvent:
		s.Clear()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	return nil
}

// Replay feeds a recorded event sequence to the surface and returns the
// payload current after the last event.
func Replay(s *Surface, events []InputEvent) (string, error) {
	for i, e := range events {
		if err := Dispatch(s, e); err != nil {
			return s.Payload(), fmt.Errorf("event %d: %w", i, err)
		}
	}
	return s.Payload(), nil
}
