package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputEvent_Sample(t *testing.T) {
	tests := []struct {
		name   string
		event  InputEvent
		want   PointerSample
		wantOK bool
	}{
		{
			name:   "mouse",
			event:  InputEvent{Type: MouseMove, ClientX: 12, ClientY: 34},
			want:   PointerSample{X: 12, Y: 34},
			wantOK: true,
		},
		{
			name: "touch uses first touch",
			event: InputEvent{Type: TouchMove, Touches: []TouchPoint{
				{ClientX: 5, ClientY: 6}, {ClientX: 100, ClientY: 100},
			}},
			want:   PointerSample{X: 5, Y: 6},
			wantOK: true,
		},
		{
			name:   "touch without touches",
			event:  InputEvent{Type: TouchEnd},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.event.Sample()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestReplay_MouseAndTouchAreInterchangeable(t *testing.T) {
	mouse := []InputEvent{
		{Type: MouseDown, ClientX: 10, ClientY: 50},
		{Type: MouseMove, ClientX: 60, ClientY: 50},
		{Type: MouseMove, ClientX: 120, ClientY: 70},
		{Type: MouseUp},
	}
	touch := []InputEvent{
		{Type: TouchStart, Touches: []TouchPoint{{ClientX: 10, ClientY: 50}}},
		{Type: TouchMove, Touches: []TouchPoint{{ClientX: 60, ClientY: 50}}},
		{Type: TouchMove, Touches: []TouchPoint{{ClientX: 120, ClientY: 70}}},
		{Type: TouchEnd},
	}

	a := NewSurface("")
	pa, err := Replay(a, mouse)
	require.NoError(t, err)

	b := NewSurface("")
	pb, err := Replay(b, touch)
	require.NoError(t, err)

	assert.NotEmpty(t, pa)
	assert.Equal(t, pa, pb)
}

func TestReplay_MouseLeaveEndsStroke(t *testing.T) {
	s := NewSurface("")
	payload, err := Replay(s, []InputEvent{
		{Type: MouseDown, ClientX: 10, ClientY: 10},
		{Type: MouseMove, ClientX: 40, ClientY: 10},
		{Type: MouseLeave},
		{Type: MouseMove, ClientX: 90, ClientY: 90},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
	assert.Equal(t, Idle, s.State())
	assert.Zero(t, s.Image().NRGBAAt(90, 90).A)
}

func TestReplay_ClearResetsPayload(t *testing.T) {
	s := NewSurface("")
	payload, err := Replay(s, []InputEvent{
		{Type: MouseDown, ClientX: 10, ClientY: 10},
		{Type: MouseMove, ClientX: 40, ClientY: 10},
		{Type: MouseUp},
		{Type: ClearEvent},
	})
	require.NoError(t, err)
	assert.Equal(t, "", payload)
	assert.False(t, s.HasContent())
}

func TestReplay_UnknownEvent(t *testing.T) {
	s := NewSurface("")
	_, err := Replay(s, []InputEvent{{Type: "wheel"}})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
