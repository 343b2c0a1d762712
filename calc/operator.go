package calc

import "fmt"

// Operator is a binary operation queued against the accumulator
type Operator int

const (
	None Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

// String returns the operator's lowercase name
func (o Operator) String() string {
	switch o {
	case None:
		return "none"
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Valid reports whether o is one of the five recognized operators
func (o Operator) Valid() bool {
	return o >= None && o <= Divide
}

// apply combines acc and val. None replaces the accumulator with val.
func (o Operator) apply(acc, val float64) float64 {
	switch o {
	case Add:
		return acc + val
	case Subtract:
		return acc - val
	case Multiply:
		return acc * val
	case Divide:
		return acc / val
	default:
		return val
	}
}
