package jumpindex

// Layout describes a uniformly sized list so a position can be turned into a
// scroll offset. Units are whatever the host UI uses.
type Layout struct {
	RowHeight      float64
	Padding        float64
	ViewportHeight float64
}

// ContentHeight is the height of count rows plus padding above and below.
func (l Layout) ContentHeight(count int) float64 {
	return float64(count)*l.RowHeight + 2*l.Padding
}

// Offset converts a position in a projection of count entries into a scroll
// offset. The offset never scrolls past the end of the content: it is
// clamped to ContentHeight(count) - ViewportHeight, and never below zero.
func (l Layout) Offset(position, count int) float64 {
	offset := float64(position)*l.RowHeight + l.Padding

	if limit := l.ContentHeight(count) - l.ViewportHeight; offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
