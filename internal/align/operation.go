package align

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Gap is the placeholder printed for the absent side of an operation.
const Gap = "-"

// OpKind classifies an EditOperation.
type OpKind int

const (
	OpMatch OpKind = iota
	OpMismatch
	OpDeletion
	OpInsertion
)

func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "match"
	case OpMismatch:
		return "mismatch"
	case OpDeletion:
		return "deletion"
	case OpInsertion:
		return "insertion"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// EditOperation is one step of an alignment: an optional code from x and an
// optional code from y. At least one side is always present.
type EditOperation struct {
	x, y       int
	hasX, hasY bool
}

// Pair builds a match (a == b) or mismatch operation.
func Pair(a, b int) EditOperation {
	return EditOperation{x: a, y: b, hasX: true, hasY: true}
}

// Deletion builds an operation deleting a from x.
func Deletion(a int) EditOperation {
	return EditOperation{x: a, hasX: true}
}

// Insertion builds an operation inserting b from y.
func Insertion(b int) EditOperation {
	return EditOperation{y: b, hasY: true}
}

// X returns the code taken from x and whether it is present.
func (o EditOperation) X() (int, bool) { return o.x, o.hasX }

// Y returns the code taken from y and whether it is present.
func (o EditOperation) Y() (int, bool) { return o.y, o.hasY }

// Kind reports what the operation does.
func (o EditOperation) Kind() OpKind {
	switch {
	case !o.hasX:
		return OpInsertion
	case !o.hasY:
		return OpDeletion
	case o.x == o.y:
		return OpMatch
	default:
		return OpMismatch
	}
}

// Cost is the unit cost of the operation.
func (o EditOperation) Cost() int {
	if o.Kind() == OpMatch {
		return 0
	}
	return 1
}

// String renders the operation as "(a, b)" with Gap for an absent side.
func (o EditOperation) String() string {
	return "(" + side(o.x, o.hasX) + ", " + side(o.y, o.hasY) + ")"
}

func side(v int, ok bool) string {
	if !ok {
		return Gap
	}
	return strconv.Itoa(v)
}

type editOperationJSON struct {
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`
}

// MarshalJSON encodes the operation as {"x":a,"y":b}, omitting absent sides.
func (o EditOperation) MarshalJSON() ([]byte, error) {
	var v editOperationJSON
	if o.hasX {
		x := o.x
		v.X = &x
	}
	if o.hasY {
		y := o.y
		v.Y = &y
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (o *EditOperation) UnmarshalJSON(data []byte) error {
	var v editOperationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal edit operation: %w", err)
	}
	if v.X == nil && v.Y == nil {
		return fmt.Errorf("unmarshal edit operation: both sides absent")
	}
	*o = EditOperation{}
	if v.X != nil {
		o.x, o.hasX = *v.X, true
	}
	if v.Y != nil {
		o.y, o.hasY = *v.Y, true
	}
	return nil
}
