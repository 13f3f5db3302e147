package domain

// Permission is the decision set for one viewer against one project. The
// rest of the system treats it as an opaque oracle result.
type Permission struct {
	CanView     bool
	CanEdit     bool
	CanManage   bool
	DetailLevel DetailLevel
}

// DetailLevel controls how much of a project a viewer may see.
type DetailLevel string

const (
	DetailFull    DetailLevel = "full"
	DetailLimited DetailLevel = "limited"
	DetailNone    DetailLevel = "none"
)

// PermissionForRole maps a membership role onto concrete permissions.
// An unknown or empty role grants nothing.
func PermissionForRole(role MemberRole) Permission {
	switch role {
	case RoleOwner:
		return Permission{CanView: true, CanEdit: true, CanManage: true, DetailLevel: DetailFull}
	case RoleEditor:
		return Permission{CanView: true, CanEdit: true, DetailLevel: DetailFull}
	case RoleViewer:
		return Permission{CanView: true, DetailLevel: DetailLimited}
	default:
		return Permission{DetailLevel: DetailNone}
	}
}
