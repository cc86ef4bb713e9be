package shell

import "strings"

// Command is a recognized interpreter command.
type Command int

const (
	CmdUnknown Command = iota
	CmdNew
	CmdAlive
	CmdDead
	CmdGenerate
	CmdPrint
	CmdClear
	CmdResize
	CmdShape
	CmdHelp
	CmdQuit
)

// commandOrder is the order in which prefixes are matched, so "n" is NEW
// and "c" is CLEAR.
var commandOrder = []Command{
	CmdNew, CmdAlive, CmdDead, CmdGenerate, CmdPrint,
	CmdClear, CmdResize, CmdShape, CmdHelp, CmdQuit,
}

// String returns the command word.
func (c Command) String() string {
	switch c {
	case CmdNew:
		return "NEW"
	case CmdAlive:
		return "ALIVE"
	case CmdDead:
		return "DEAD"
	case CmdGenerate:
		return "GENERATE"
	case CmdPrint:
		return "PRINT"
	case CmdClear:
		return "CLEAR"
	case CmdResize:
		return "RESIZE"
	case CmdShape:
		return "SHAPE"
	case CmdHelp:
		return "HELP"
	case CmdQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// Args returns the number of arguments the command takes.
func (c Command) Args() int {
	switch c {
	case CmdNew, CmdAlive, CmdDead, CmdResize:
		return 2
	case CmdShape:
		return 1
	default:
		return 0
	}
}

// ParseCommand matches a token case-insensitively against the command words.
// Any non-empty prefix selects the first command in commandOrder it starts.
func ParseCommand(token string) Command {
	if token == "" {
		return CmdUnknown
	}
	normalized := strings.ToUpper(token)
	for _, c := range commandOrder {
		if strings.HasPrefix(c.String(), normalized) {
			return c
		}
	}
	return CmdUnknown
}
