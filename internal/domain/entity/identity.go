package entity

// Identity is the authenticated caller context supplied by the session layer
// to the stores. A zero Identity is anonymous.
type Identity struct {
	UserID string
	Admin  bool
}

// Anonymous reports whether the identity carries no authenticated user
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}
