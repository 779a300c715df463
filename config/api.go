package config

import "strings"

const (
	defaultMessagePath = "message"
	defaultPageSize    = 10
)

// APIConfig describes the external REST backend the console relays to.
type APIConfig struct {
	// BaseURL is prefixed to every backend path (e.g., "https://api.example.com").
	BaseURL string `env:"API_BASE_URL"`

	// MessagePath is a JMESPath expression locating the human-readable error
	// message inside a backend response body.
	MessagePath string `env:"API_MESSAGE_PATH" envDefault:"message"`

	// PageSize is the number of rows the backend returns per page. The pager
	// multiplies the backend total by this value.
	PageSize int `env:"API_PAGE_SIZE" envDefault:"10"`
}

// Sanitize trims the base URL and restores defaults for empty values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.MessagePath = strings.TrimSpace(c.MessagePath)
	if c.MessagePath == "" {
		c.MessagePath = defaultMessagePath
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
}
