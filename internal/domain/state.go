package domain

// NavigationState is the derived snapshot recomputed on demand by the
// navigation service. It is never stored.
type NavigationState struct {
	CurrentPath        string `json:"current_path"`
	IsNavigating       bool   `json:"is_navigating"`
	CanGoBack          bool   `json:"can_go_back"`
	CanGoForward       bool   `json:"can_go_forward"`
	AutoRefreshEnabled bool   `json:"auto_refresh_enabled"`
	ValidationEnabled  bool   `json:"validation_enabled"`
}
