package navigation

// View represents the current view in the UI
type View int

const (
	ViewLogs View = iota
	ViewSources
)

// String returns the string representation of the view
func (v View) String() string {
	switch v {
	case ViewLogs:
		return "logs"
	case ViewSources:
		return "sources"
	default:
		return "unknown"
	}
}
