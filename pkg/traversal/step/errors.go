package step

import "errors"

var (
	ErrNoGraph          = errors.New("traversal has no graph")
	ErrNotAnElement     = errors.New("traverser does not hold a graph element")
	ErrGraphNotMutable  = errors.New("graph does not accept writes")
	ErrUnexpectedResult = errors.New("unexpected side-effect value")
)
