package analyzer

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput — N, K или длина значений вне допустимых границ.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation — дефект в оконной логике, а не ошибка пользователя.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// InvalidInputError описывает, какой параметр нарушил ограничения.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// InvariantViolation — длина результата не совпала с числом окон.
type InvariantViolation struct {
	Want int
	Got  int
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violation: expected %d window metrics, got %d", e.Want, e.Got)
}

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariantViolation }
