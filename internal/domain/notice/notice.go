// Package notice defines the transient messages shown once after an action,
// such as the logout farewell or an "Updated" confirmation.
package notice

// Kind controls how a notice is styled.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is a one-shot message displayed on the next rendered page.
type Notice struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Info builds an informational notice.
func Info(title, description string) Notice {
	return Notice{Kind: KindInfo, Title: title, Description: description}
}

// Success builds a success notice.
func Success(title string) Notice {
	return Notice{Kind: KindSuccess, Title: title}
}

// Error builds an error notice.
func Error(title string) Notice {
	return Notice{Kind: KindError, Title: title}
}
