package projection

// Row is one entry in the linearized projection, carrying enough
// information for a flat list renderer to indent and hide it.
type Row struct {
	Node      *TrackNode
	Depth     int
	IsVisible bool
}

// Flatten walks the tree depth-first and emits every node in render
// order. A node under a collapsed or invisible parent is still emitted,
// flagged IsVisible=false; collapse hides descendants from rendering but
// never removes them from the projection.
func (p *Projection) Flatten() []Row {
	var rows []Row
	for _, root := range p.Tracks {
		rows = flattenInto(rows, root, 0, true)
	}
	return rows
}

func flattenInto(rows []Row, node *TrackNode, depth int, visible bool) []Row {
	rows = append(rows, Row{Node: node, Depth: depth, IsVisible: visible})
	childVisible := visible && !node.Collapsed
	for _, sub := range node.Subtracks {
		rows = flattenInto(rows, sub, depth+1, childVisible)
	}
	return rows
}
