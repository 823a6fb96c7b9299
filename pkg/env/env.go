package env

import "fmt"

type Error struct {
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to access environment variable: %s", e.Name)
}

type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}

// ValueError reports a variable that is set but holds an unsupported value.
type ValueError struct {
	Name  string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("unsupported value for environment variable %s: %s", e.Name, e.Value)
}
