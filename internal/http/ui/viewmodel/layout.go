package viewmodel

import "github.com/target/catalog-console/internal/domain/notice"

// User represents the authenticated user context exposed to templates.
type User struct {
	Name  string
	Email string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Notices         []notice.Notice
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
