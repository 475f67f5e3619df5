package domain

// QuickLocation represents a shortcut directory shown in navigation menus.
//
// Standard locations are probed from platform directories at startup
// (home, root, documents, ...). Custom locations are added by the user or
// provisioned through the seed file and are the only ones persisted.
type QuickLocation struct {
	// Name is unique within the quick-location set.
	Name string `json:"name"`

	// Icon is a glyph identifier rendered by the UI layer.
	Icon string `json:"icon"`

	// Path is the absolute filesystem path of the location.
	Path string `json:"path"`

	// Description defaults to "Navigate to <Name>".
	Description string `json:"description"`

	// Standard marks locations probed from platform directories,
	// as opposed to user-added ones. Stored explicitly so a custom
	// location named "Home" is never misclassified.
	Standard bool `json:"standard"`
}

// DefaultDescription fills the description when none was provided.
func (q *QuickLocation) DefaultDescription() string {
	return "Navigate to " + q.Name
}
