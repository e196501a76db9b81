package complaints

import "societypro-be/models"

// Action on a complaint gated by the access policy.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanAccess is the single ownership/role rule for complaints. Admin-class
// roles may act on any complaint; resident-class principals only on their
// own; every other role is denied.
func CanAccess(p Principal, c *models.Complaint, _ Action) bool {
	switch {
	case AdminRole(p.Role):
		return true
	case ResidentRole(p.Role):
		return c.RaisedBy == p.ID
	default:
		return false
	}
}
