package lr

import "fmt"

// GrammarError is returned when a grammar cannot be constructed, e.g. because of
// an undefined start symbol or a production referencing an undeclared symbol.
type GrammarError struct {
	Grammar string // name of the grammar
	Msg     string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar %q: %s", e.Grammar, e.Msg)
}

func grammarError(name string, format string, args ...interface{}) *GrammarError {
	return &GrammarError{Grammar: name, Msg: fmt.Sprintf(format, args...)}
}

// BuildErrorKind categorizes errors during table construction.
type BuildErrorKind int

// The kinds of build errors.
const (
	ResourceExceeded BuildErrorKind = iota + 1 // too many automaton states
)

func (k BuildErrorKind) String() string {
	switch k {
	case ResourceExceeded:
		return "ResourceExceeded"
	}
	return fmt.Sprintf("BuildErrorKind(%d)", int(k))
}

// BuildError is returned if the construction of an automaton or of parser
// tables has to be aborted.
type BuildError struct {
	Kind  BuildErrorKind
	Limit int // the limit which has been exceeded
	Msg   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s (limit %d)", e.Kind, e.Msg, e.Limit)
}
