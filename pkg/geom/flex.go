package geom

import "strconv"

// Axis is the direction a list stacks its children in. Horizontal lists
// grow along columns, vertical ones along rows.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

var axisNames = [...]string{"horizontal", "vertical"}

func (a Axis) String() string { return enumName(axisNames[:], int(a), "Axis") }

// enumName is the String of the small enums below.
func enumName(names []string, v int, typ string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return typ + "(" + strconv.Itoa(v) + ")"
}

// Size builds a Size from main and cross extents.
func (a Axis) Size(main, cross float64) Size {
	if a == AxisVertical {
		return Size{Width: cross, Height: main}
	}
	return Size{Width: main, Height: cross}
}

// Main returns the main-axis extent of s.
func (a Axis) Main(s Size) float64 {
	if a == AxisVertical {
		return s.Height
	}
	return s.Width
}

// Cross returns the cross-axis extent of s.
func (a Axis) Cross(s Size) float64 {
	if a == AxisVertical {
		return s.Width
	}
	return s.Height
}

// Pos builds a cell position from main and cross offsets.
func (a Axis) Pos(main, cross int) Pos {
	if a == AxisVertical {
		return Pos{X: cross, Y: main}
	}
	return Pos{X: main, Y: cross}
}

// MainAxisAlignment places children along a list's axis once their
// lengths are known. Gaps are computed in fractional cells and truncated
// when positions are resolved.
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart leaves the spare cells after the last child.
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentEnd leaves them before the first child.
	MainAxisAlignmentEnd
	// MainAxisAlignmentCenter splits them between both ends.
	MainAxisAlignmentCenter
	// MainAxisAlignmentSpaceBetween puts them only between children; a single
	// child sits at the start.
	MainAxisAlignmentSpaceBetween
	// MainAxisAlignmentSpaceAround gives each child the same gap on both
	// sides, so the outer gaps are half the inner ones.
	MainAxisAlignmentSpaceAround
	// MainAxisAlignmentSpaceEvenly makes the outer and inner gaps equal.
	MainAxisAlignmentSpaceEvenly
)

var mainAxisAlignmentNames = [...]string{"start", "end", "center", "space_between", "space_around", "space_evenly"}

func (a MainAxisAlignment) String() string {
	return enumName(mainAxisAlignmentNames[:], int(a), "MainAxisAlignment")
}

// Spacing returns the leading gap and the gap between consecutive children
// for count children occupying used cells out of size.
func (a MainAxisAlignment) Spacing(count int, size, used float64) (leading, between float64) {
	free := size - used
	if free < 0 {
		free = 0
	}
	switch a {
	case MainAxisAlignmentCenter:
		return free / 2, 0
	case MainAxisAlignmentEnd:
		return free, 0
	case MainAxisAlignmentSpaceBetween:
		if count <= 1 {
			return 0, 0
		}
		return 0, free / float64(count-1)
	case MainAxisAlignmentSpaceAround:
		if count == 0 {
			return 0, 0
		}
		between = free / float64(count)
		return between / 2, between
	case MainAxisAlignmentSpaceEvenly:
		gap := free / float64(count+1)
		return gap, gap
	default:
		return 0, 0
	}
}

// CrossAxisAlignment places each child across a list's axis, inside the
// list's cross extent.
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentStart puts the child in the top row of a horizontal
	// list or the left column of a vertical one.
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	CrossAxisAlignmentEnd
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentStretch lays the child out with a tight cross extent.
	CrossAxisAlignmentStretch
)

var crossAxisAlignmentNames = [...]string{"start", "end", "center", "stretch"}

func (a CrossAxisAlignment) String() string {
	return enumName(crossAxisAlignmentNames[:], int(a), "CrossAxisAlignment")
}

// Offset returns the cross offset of a child of extent child inside extent total.
func (a CrossAxisAlignment) Offset(total, child float64) float64 {
	switch a {
	case CrossAxisAlignmentCenter:
		return (total - child) / 2
	case CrossAxisAlignmentEnd:
		return total - child
	default:
		return 0
	}
}

// MainAxisSize decides a list's own length along its axis.
type MainAxisSize int

const (
	// MainAxisSizeMax takes every cell the parent allows. Under an unbounded
	// constraint it falls back to the children's total.
	MainAxisSizeMax MainAxisSize = iota
	// MainAxisSizeMin takes the children's total, clamped to the constraint.
	MainAxisSizeMin
)

var mainAxisSizeNames = [...]string{"max", "min"}

func (s MainAxisSize) String() string { return enumName(mainAxisSizeNames[:], int(s), "MainAxisSize") }

// FlexFit decides whether a flexible child must use all the cells its
// factor earned.
type FlexFit int

const (
	// FlexFitLoose lets the child end up shorter than its share.
	FlexFitLoose FlexFit = iota
	// FlexFitTight lays the child out with its share as a tight constraint.
	FlexFitTight
)

var flexFitNames = [...]string{"loose", "tight"}

func (f FlexFit) String() string { return enumName(flexFitNames[:], int(f), "FlexFit") }
