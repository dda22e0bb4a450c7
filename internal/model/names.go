package model

import "strconv"

// Fixed, unique names of the structural panels and hardware points.
// The geometry kernel and the cut list both key on these.
const (
	NameSideLeft       = "Side Left"
	NameSideRight      = "Side Right"
	NameBack           = "Back"
	NameBottom         = "Bottom"
	NameFrontStretcher = "Front Stretcher"
	NameBackStretcher  = "Back Stretcher"
	NameDoorLeft       = "Door Left"
	NameDoorRight      = "Door Right"

	NamePullLeft  = "Pull Left"
	NamePullRight = "Pull Right"
)

// ShelfName returns "Shelf i" for the 1-indexed shelf i.
func ShelfName(i int) string {
	return "Shelf " + strconv.Itoa(i)
}

// HingeName returns "Hinge Left 1", "Hinge Right 2", etc. side is "Left"
// or "Right"; i is 1 for the lower hinge and 2 for the upper.
func HingeName(side string, i int) string {
	return "Hinge " + side + " " + strconv.Itoa(i)
}
