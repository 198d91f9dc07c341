package core

// Headers the transport trusts from the fronting auth proxy.
const (
	RequesterHeader = "x-catalog-requester"
	OwnerHeader     = "x-catalog-owner"
	AdminHeader     = "x-catalog-admin"
	RolesHeader     = "x-catalog-roles"
)

const (
	EventActionUpdate = "update"
	EventActionDelete = "delete"
)

// EventChannel is the redis channel lifecycle events for a resource
// kind are published on.
func EventChannel(kind string) string {
	return "catalog:events:" + kind
}
