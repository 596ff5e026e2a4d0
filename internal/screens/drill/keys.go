package drill

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/brainbuilder/internal/ui/layout"
)

type keyMap struct {
	Reveal     key.Binding
	GotIt      key.Binding
	Missed     key.Binding
	Confidence key.Binding
	Continue   key.Binding
	Back       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Reveal:     key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "Reveal")),
		GotIt:      key.NewBinding(key.WithKeys("y", "right"), key.WithHelp("y", "Got it")),
		Missed:     key.NewBinding(key.WithKeys("n", "left"), key.WithHelp("n", "Missed")),
		Confidence: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "Confidence")),
		Continue:   key.NewBinding(key.WithKeys("enter", "space", "esc", "q"), key.WithHelp("enter", "Done")),
		Back:       key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "Abandon")),
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
