package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialState(t *testing.T) {
	c := NewController()
	assert.Equal(t, State{ShowLabels: true, Phase: Active}, c.State())
	assert.False(t, c.State().Terminated())
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name        string
		keys        []int
		transitions []Transition
		want        State
	}{
		{
			name:        "no key",
			keys:        []int{NoKey, NoKey},
			transitions: []Transition{Ignored, Ignored},
			want:        State{ShowLabels: true, Phase: Active},
		},
		{
			name:        "toggle once",
			keys:        []int{'h'},
			transitions: []Transition{LabelsToggled},
			want:        State{ShowLabels: false, Phase: Active},
		},
		{
			name:        "toggle twice restores",
			keys:        []int{'h', 'h'},
			transitions: []Transition{LabelsToggled, LabelsToggled},
			want:        State{ShowLabels: true, Phase: Active},
		},
		{
			name:        "other keys ignored",
			keys:        []int{'x', 'Q', 'H', 27, ' '},
			transitions: []Transition{Ignored, Ignored, Ignored, Ignored, Ignored},
			want:        State{ShowLabels: true, Phase: Active},
		},
		{
			name:        "quit is absorbing",
			keys:        []int{'h', 'q', 'h', 'q'},
			transitions: []Transition{LabelsToggled, Quit, Ignored, Ignored},
			want:        State{ShowLabels: false, Phase: Terminated},
		},
		{
			name:        "high bits masked",
			keys:        []int{0x100000 | 'q'},
			transitions: []Transition{Quit},
			want:        State{ShowLabels: true, Phase: Terminated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			var got []Transition
			for _, k := range tt.keys {
				got = append(got, c.HandleKey(k))
			}
			assert.Equal(t, tt.transitions, got)
			assert.Equal(t, tt.want, c.State())
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "terminated", Terminated.String())
}
