package models

// Role identifies the author of a transcript entry
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message represents a chat message for TUI display
type Message struct {
	Role    Role
	Content string
}
