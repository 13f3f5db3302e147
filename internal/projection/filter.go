package projection

import (
	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/timeline"
)

// FilterByBucket narrows a projection to the tracks and subtracks that
// have at least one item overlapping the bucket, with each node's items
// cut down to the overlapping ones and counts recomputed. This is the
// drill-down rule for a single bucket; it is deliberately stricter than
// whole-projection emptiness, which never looks at item counts.
func FilterByBucket(p *Projection, b timeline.Bucket) *Projection {
	out := &Projection{ProjectID: p.ProjectID}
	for _, root := range p.Tracks {
		if node := filterNode(root, b); node != nil {
			out.Tracks = append(out.Tracks, node)
		}
	}
	return out
}

func filterNode(node *TrackNode, b timeline.Bucket) *TrackNode {
	var items []*domain.RoadmapItem
	for _, it := range node.Items {
		if timeline.ItemOverlapsBucket(it, b) {
			items = append(items, it)
		}
	}

	var subtracks []*TrackNode
	total := len(items)
	for _, sub := range node.Subtracks {
		if kept := filterNode(sub, b); kept != nil {
			subtracks = append(subtracks, kept)
			total += kept.TotalItemCount
		}
	}

	if total == 0 {
		return nil
	}
	return &TrackNode{
		Track:          node.Track,
		Items:          items,
		Subtracks:      subtracks,
		ItemCount:      len(items),
		TotalItemCount: total,
		Collapsed:      node.Collapsed,
		Highlighted:    node.Highlighted,
		CanEdit:        node.CanEdit,
	}
}
