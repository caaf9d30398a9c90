// Package errors defines the failure taxonomy of traversal compilation.
//
// A ConfigurationError means the registered strategies cannot be ordered and
// no traversal can be compiled with them. A VerificationError means a single
// traversal was rejected by a strategy; it aborts that compilation only.
// Structural invariant violations are programming defects and panic.
package errors

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid strategy configuration")

	// ErrVerification is matched by every *VerificationError.
	ErrVerification = errors.New("traversal verification failed")

	// ErrStructuralInvariant is the panic value cause used when a pipeline is left malformed.
	ErrStructuralInvariant = errors.New("traversal structural invariant violated")
)

// ConfigurationError reports strategies whose prior/post constraints form a cycle.
type ConfigurationError struct {
	Category string
	// Cycles holds the names of the strategies of every strongly connected component.
	Cycles [][]string
}

func (e *ConfigurationError) Error() string {
	cycles := make([]string, 0, len(e.Cycles))
	for _, c := range e.Cycles {
		cycles = append(cycles, "["+strings.Join(c, " -> ")+"]")
	}
	return fmt.Sprintf("%s: cyclic %s strategy constraints %s", ErrConfiguration, e.Category, strings.Join(cycles, ", "))
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// VerificationError is returned when a strategy refuses to compile a traversal.
type VerificationError struct {
	Reason string
	// Traversal is the string form of the offending traversal.
	Traversal string
	// Step identifies the offending step, if a single one is to blame.
	Step string
}

func NewVerificationError(reason string, traversal fmt.Stringer) *VerificationError {
	return &VerificationError{Reason: reason, Traversal: traversal.String()}
}

func (e *VerificationError) WithStep(step fmt.Stringer) *VerificationError {
	e.Step = step.String()
	return e
}

func (e *VerificationError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("%s: %s: %s in %s", ErrVerification, e.Reason, e.Step, e.Traversal)
	}
	return fmt.Sprintf("%s: %s: %s", ErrVerification, e.Reason, e.Traversal)
}

func (e *VerificationError) Is(target error) bool {
	return target == ErrVerification
}

// AssertInvariant panics with ErrStructuralInvariant when cond is false.
func AssertInvariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", ErrStructuralInvariant, fmt.Sprintf(format, args...)))
	}
}

// ErrorWithStack wraps the error with stack if error is non nil.
// Otherwise, the wrap will create a new "error" that has nil in it.
func ErrorWithStack(err error) error {
	if err != nil {
		return goerrors.Wrap(err, 1)
	}
	return err
}
