package hotkeys

import (
	"fmt"
	"strings"

	"github.com/1broseidon/windowkey/internal/geometry"
	"github.com/1broseidon/windowkey/internal/platform"
)

// ExitID is the identifier of the binding that stops the event loop.
const ExitID = 99

// Binding ties a hotkey identifier and an xgbutil key sequence to an action.
type Binding struct {
	ID     int
	Keys   string
	Action geometry.Action
}

// Combo returns the key sequence in the form users type it, e.g.
// "Super+Alt+Up".
func (b Binding) Combo() string {
	parts := strings.Split(b.Keys, "-")
	for i, p := range parts {
		switch {
		case p == "Mod4":
			parts[i] = "Super"
		case p == "Mod1":
			parts[i] = "Alt"
		case p == "Control":
			parts[i] = "Ctrl"
		case strings.HasPrefix(p, "KP_"):
			parts[i] = "Numpad" + strings.TrimPrefix(p, "KP_")
		}
	}
	return strings.Join(parts, "+")
}

func (b Binding) String() string {
	return fmt.Sprintf("%d %s %s", b.ID, b.Combo(), b.Action)
}

const (
	modsMove   = "Mod4-Mod1"
	modsSnap   = "Mod4-Control"
	modsResize = "Mod4-Control-Shift"
	modsGrid   = "Mod4"
)

var table = buildTable()

func buildTable() []Binding {
	bindings := make([]Binding, 0, 23)
	id := 1

	for _, group := range []struct {
		mods string
		kind geometry.ActionKind
	}{
		{modsMove, geometry.StepMove},
		{modsSnap, geometry.EdgeSnap},
		{modsResize, geometry.StepResize},
	} {
		for _, key := range platform.ArrowKeys {
			bindings = append(bindings, Binding{
				ID:     id,
				Keys:   group.mods + "-" + key.String(),
				Action: geometry.Action{Kind: group.kind, Key: key},
			})
			id++
		}
	}

	// Numpad 1-9, then 0.
	for _, slot := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0} {
		bindings = append(bindings, Binding{
			ID:     id,
			Keys:   fmt.Sprintf("%s-KP_%d", modsGrid, slot),
			Action: geometry.Action{Kind: geometry.GridPlace, Slot: slot},
		})
		id++
	}

	bindings = append(bindings, Binding{
		ID:     ExitID,
		Keys:   modsGrid + "-F10",
		Action: geometry.Action{Kind: geometry.Exit},
	})
	return bindings
}

// Table returns the compiled hotkey table in registration order.
func Table() []Binding {
	out := make([]Binding, len(table))
	copy(out, table)
	return out
}

// Lookup finds a binding by identifier.
func Lookup(id int) (Binding, bool) {
	for _, b := range table {
		if b.ID == id {
			return b, true
		}
	}
	return Binding{}, false
}

// UsageHint is printed once hotkeys are registered.
func UsageHint() string {
	exit, _ := Lookup(ExitID)
	return fmt.Sprintf("Press %s to exit", exit.Combo())
}
