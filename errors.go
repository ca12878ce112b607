package fixmath

import "errors"

// Sentinel errors returned by tree and matrix operations. Callers match them
// with errors.Is; returned errors wrap them with the operation context.
var (
	// ErrNilNode is returned when the zero Node is passed where a node is
	// required.
	ErrNilNode = errors.New("fixmath: nil node")

	// ErrNotChild is returned by RemoveChild when the node has another parent.
	ErrNotChild = errors.New("fixmath: node is not a child")

	// ErrCycle is returned when an attach would make a node its own ancestor.
	ErrCycle = errors.New("fixmath: attach would create a cycle")

	// ErrForeignTree is returned when nodes from different trees are linked.
	ErrForeignTree = errors.New("fixmath: nodes belong to different trees")

	// ErrSingular is returned by InverseChecked for a zero determinant.
	ErrSingular = errors.New("fixmath: matrix is singular")
)
