// Package history holds the in-memory transcript of a chat session.
//
// A Transcript is owned by the UI event loop and is not safe for
// concurrent use; lookups running elsewhere only ever hand back values
// that the loop applies through Resolve.
package history

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/wikichat/internal/models"
)

// Entry is one message of the transcript
type Entry struct {
	ID        string
	Role      models.Role
	Text      string
	Pending   bool // placeholder waiting for a lookup
	CreatedAt time.Time
}

// Transcript is the ordered log of a chat session. Entries are only ever
// appended, except that a pending placeholder is replaced in place once its
// lookup resolves.
type Transcript struct {
	entries []Entry
}

// NewTranscript returns a transcript holding only the welcome entry
func NewTranscript() Transcript {
	var t Transcript
	t.Reset()
	return t
}

// Reset discards every entry and adds the welcome entry
func (t *Transcript) Reset() {
	t.entries = nil
	t.Append(models.RoleBot, models.WelcomeText)
}

// Append adds an entry and returns it
func (t *Transcript) Append(role models.Role, text string) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
	t.entries = append(t.entries, e)
	return e
}

// Submit trims text and, when it is not blank, appends the user entry
// followed by a pending placeholder. ok is false for blank input, in which
// case the transcript is unchanged.
func (t *Transcript) Submit(text string) (user Entry, placeholder Entry, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, Entry{}, false
	}

	user = t.Append(models.RoleUser, text)
	placeholder = t.Append(models.RoleBot, models.PlaceholderText)
	t.entries[len(t.entries)-1].Pending = true
	placeholder.Pending = true
	return user, placeholder, true
}

// Resolve replaces the pending placeholder id with a bot answer.
// It returns false when the placeholder is gone (the chat was reset) or was
// already resolved.
func (t *Transcript) Resolve(id, text string) bool {
	for i := range t.entries {
		if t.entries[i].ID != id {
			continue
		}
		if !t.entries[i].Pending {
			return false
		}
		t.entries[i] = Entry{
			ID:        uuid.NewString(),
			Role:      models.RoleBot,
			Text:      text,
			CreatedAt: time.Now(),
		}
		return true
	}
	return false
}

// Entries returns a copy of the entries in order
func (t Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t Transcript) Len() int {
	return len(t.entries)
}

// PendingCount returns how many placeholders are waiting
func (t Transcript) PendingCount() int {
	n := 0
	for _, e := range t.entries {
		if e.Pending {
			n++
		}
	}
	return n
}

// LastAnswer returns the text of the most recent resolved bot entry
func (t Transcript) LastAnswer() (string, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.Role == models.RoleBot && !e.Pending {
			return e.Text, true
		}
	}
	return "", false
}

// Messages converts the transcript for display
func (t Transcript) Messages() []models.Message {
	msgs := make([]models.Message, 0, len(t.entries))
	for _, e := range t.entries {
		msgs = append(msgs, models.Message{Role: e.Role, Content: e.Text})
	}
	return msgs
}
