package scroll

import "fmt"

// Intent is one unit of work for the dispatch loop: a viewport movement, a
// source-level refresh, or a lifecycle request. Producers translate their
// events into intents and the loop consumes them in arrival order.
type Intent int

const (
	Up Intent = iota
	Down
	Left
	Right
	Top
	Bottom
	Reload
	Refresh
	Suspend
	ToggleHelp
	Exit
)

var intentNames = map[Intent]string{
	Up:         "up",
	Down:       "down",
	Left:       "left",
	Right:      "right",
	Top:        "top",
	Bottom:     "bottom",
	Reload:     "reload",
	Refresh:    "refresh",
	Suspend:    "suspend",
	ToggleHelp: "help",
	Exit:       "exit",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(i))
}
