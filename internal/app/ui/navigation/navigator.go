package navigation

// Navigator provides view switching functionality
type Navigator interface {
	// CurrentView returns the active view
	CurrentView() View
	// SwitchTo changes to the specified view
	SwitchTo(view View)
	// Toggle switches between logs and sources views
	Toggle()
}

type navigator struct {
	current View
}

// NewNavigator creates a new navigator starting with the logs view
func NewNavigator() Navigator {
	return &navigator{
		current: ViewLogs,
	}
}

func (n *navigator) CurrentView() View {
	return n.current
}

func (n *navigator) SwitchTo(view View) {
	n.current = view
}

func (n *navigator) Toggle() {
	if n.current == ViewLogs {
		n.current = ViewSources
	} else {
		n.current = ViewLogs
	}
}
