package session

const (
	PromptUsername = "Enter username: "
	PromptPassword = "Enter password: "

	MsgGranted     = "Access Granted!"
	MsgDenied      = "Error! Access Denied!"
	MsgStoreAbsent = "Error! Password database not found!"
)

// Outcome is the terminal state of a session.
type Outcome int

const (
	Granted Outcome = iota
	Denied
	StoreUnavailable
)

// Exit codes. Automated callers can tell a missing store from a refused login.
const (
	ExitGranted          = 0
	ExitDenied           = 1
	ExitStoreUnavailable = 2
	ExitUsage            = 3
)

func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case StoreUnavailable:
		return "store unavailable"
	}
	return "unknown"
}

// Message is the single line printed for o.
func (o Outcome) Message() string {
	switch o {
	case Granted:
		return MsgGranted
	case StoreUnavailable:
		return MsgStoreAbsent
	}
	return MsgDenied
}

func (o Outcome) ExitCode() int {
	switch o {
	case Granted:
		return ExitGranted
	case StoreUnavailable:
		return ExitStoreUnavailable
	}
	return ExitDenied
}
