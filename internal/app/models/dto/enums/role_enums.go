package enums

// RoleType defines the role carried in an access token
type RoleType string

const (
	// RoleRegistrar may create and change records
	RoleRegistrar RoleType = "registrar"
	// RoleViewer may only read
	RoleViewer RoleType = "viewer"
)

// IsValid reports whether r is a known role
func (r RoleType) IsValid() bool {
	return r == RoleRegistrar || r == RoleViewer
}
