package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

type TrackCategory string

const (
	CategoryMain        TrackCategory = "main"
	CategorySideProject TrackCategory = "side_project"
)

type TrackVisibility string

const (
	VisibilityVisible   TrackVisibility = "visible"
	VisibilityCollapsed TrackVisibility = "collapsed"
	VisibilityHidden    TrackVisibility = "hidden"
)

type ItemType string

const (
	ItemTask        ItemType = "task"
	ItemEvent       ItemType = "event"
	ItemMilestone   ItemType = "milestone"
	ItemGoal        ItemType = "goal"
	ItemHabit       ItemType = "habit"
	ItemNote        ItemType = "note"
	ItemDocument    ItemType = "document"
	ItemPhoto       ItemType = "photo"
	ItemGroceryList ItemType = "grocery_list"
	ItemReview      ItemType = "review"
)

// ValidItemTypes is the canonical set of accepted item type strings.
var ValidItemTypes = map[string]bool{
	"task": true, "event": true, "milestone": true, "goal": true,
	"habit": true, "note": true, "document": true, "photo": true,
	"grocery_list": true, "review": true,
}

// RequiresStartDate reports whether items of this type must carry a start
// date. Only events and milestones are anchored to the calendar; every
// other type may be open-ended.
func (t ItemType) RequiresStartDate() bool {
	return t == ItemEvent || t == ItemMilestone
}

type ItemStatus string

const (
	StatusNotStarted ItemStatus = "not_started"
	StatusInProgress ItemStatus = "in_progress"
	StatusBlocked    ItemStatus = "blocked"
	StatusOnHold     ItemStatus = "on_hold"
	StatusCompleted  ItemStatus = "completed"
)

// ValidItemStatuses is the canonical set of accepted item status strings.
var ValidItemStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "blocked": true,
	"on_hold": true, "completed": true,
}

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleEditor MemberRole = "editor"
	RoleViewer MemberRole = "viewer"
)

// ViewMode is the zoom level of the horizontal timeline. One rendered
// column covers one unit of the active mode.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)
