package gui

import (
	"testing"

	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
)

func TestGui_StartsStroke(t *testing.T) {
	testCases := []struct {
		name  string
		event pointer.Event
		want  bool
	}{
		{"mouse primary", pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary}, true},
		{"mouse secondary", pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonSecondary}, false},
		{"mouse without buttons", pointer.Event{Type: pointer.Press, Source: pointer.Mouse}, false},
		{"touch", pointer.Event{Type: pointer.Press, Source: pointer.Touch}, true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, startsStroke(tc.event), tc.name)
	}
}
