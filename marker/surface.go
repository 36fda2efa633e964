package marker

import "errors"

// ErrNoSurface is returned when a pool is created without a rendering surface.
var ErrNoSurface = errors.New("marker: no rendering surface")

// MarkerSpec describes a marker element to create.
type MarkerSpec struct {
	ID    string
	Class string
	Slot  int
	Label string
}

// Element is the surface-side handle of one marker.
type Element interface {
	SetPosition(x, y int)
	SetOpacity(opacity float64)
	SetVisible(visible bool)
}

// Surface is the rendering surface markers live on.
//
// RegisterStyle installs the shared rule under id for elements of class
// st.Class(); registering again with the same id replaces it for every
// existing and future element.
type Surface interface {
	RegisterStyle(id string, st Style) error
	CreateMarker(spec MarkerSpec) (Element, error)
}
