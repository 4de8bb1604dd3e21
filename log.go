package linprog

// Logger receives progress messages from the solver. Both the standard
// library's log.Logger and zerolog's Logger satisfy it.
type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}
