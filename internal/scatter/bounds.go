package scatter

// Bounds is the extent of the record set on both axes.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ComputeBounds scans records for the min and max of each axis.
func ComputeBounds(records []Record) (Bounds, error) {
	if len(records) == 0 {
		return Bounds{}, ErrEmptyInput
	}

	b := Bounds{
		MinX: records[0].X, MaxX: records[0].X,
		MinY: records[0].Y, MaxY: records[0].Y,
	}
	for _, r := range records[1:] {
		if r.X < b.MinX {
			b.MinX = r.X
		}
		if r.X > b.MaxX {
			b.MaxX = r.X
		}
		if r.Y < b.MinY {
			b.MinY = r.Y
		}
		if r.Y > b.MaxY {
			b.MaxY = r.Y
		}
	}
	return b, nil
}
