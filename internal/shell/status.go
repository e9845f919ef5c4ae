package shell

// Level grades a status message.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Status is the outcome of one dispatched action, shown to the user.
type Status struct {
	Level   Level
	Message string
	// Err is the underlying failure for Warning and Error statuses, if any.
	Err error
}

// Symbol is the marker printed before the message.
func (s Status) Symbol() string {
	switch s.Level {
	case Warning:
		return "⚠"
	case Error:
		return "✗"
	default:
		return "✓"
	}
}

func (s Status) String() string {
	return s.Symbol() + " " + s.Message
}

func info(msg string) Status { return Status{Level: Info, Message: msg} }

func warn(msg string, err error) Status { return Status{Level: Warning, Message: msg, Err: err} }

func fail(msg string, err error) Status { return Status{Level: Error, Message: msg, Err: err} }
