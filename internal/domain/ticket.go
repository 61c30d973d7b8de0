package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusSolved TicketStatus = "solved"
	TicketStatusClosed TicketStatus = "closed"
)

// Valid reports whether s is one of the known statuses
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusSolved, TicketStatusClosed:
		return true
	}
	return false
}

// AllTicketStatuses lists statuses in lifecycle order
func AllTicketStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusSolved, TicketStatusClosed}
}

// Ticket represents one support request
type Ticket struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Category       string       `json:"category"`
	Description    string       `json:"description"`
	Email          string       `json:"email"`
	AdditionalInfo *string      `json:"additionalInfo,omitempty"`
	Summary        *string      `json:"summary,omitempty"`
	Status         TicketStatus `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// NewTicket creates a new open ticket with a fresh id
func NewTicket(title, category, description, email string) *Ticket {
	now := time.Now().UTC()
	return &Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Category:    category,
		Description: description,
		Email:       email,
		Status:      TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetStatus transitions the ticket to status
func (t *Ticket) SetStatus(status TicketStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus(string(status))
	}
	t.Status = status
	t.touch()
	return nil
}

// SetAdditionalInfo stores the optional additional information
func (t *Ticket) SetAdditionalInfo(info string) {
	if info == "" {
		t.AdditionalInfo = nil
	} else {
		t.AdditionalInfo = &info
	}
	t.touch()
}

// SetSummary stores the generated summary
func (t *Ticket) SetSummary(summary string) {
	if summary == "" {
		t.Summary = nil
	} else {
		t.Summary = &summary
	}
	t.touch()
}

// Matches reports whether the ticket contains term in any searchable field
func (t *Ticket) Matches(term string) bool {
	term = strings.ToLower(term)
	if term == "" {
		return true
	}
	fields := []string{t.Title, t.Description, t.Email}
	if t.Summary != nil {
		fields = append(fields, *t.Summary)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (t *Ticket) touch() {
	t.UpdatedAt = time.Now().UTC()
}

// TicketFilter represents filters for listing tickets
type TicketFilter struct {
	Search   string        `json:"search,omitempty"`
	Category *string       `json:"category,omitempty"`
	Status   *TicketStatus `json:"status,omitempty"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// TicketPatch carries the fields the management console may edit.
// Nil fields are left untouched.
type TicketPatch struct {
	Title          *string       `json:"title,omitempty"`
	Category       *string       `json:"category,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Email          *string       `json:"email,omitempty"`
	AdditionalInfo *string       `json:"additionalInfo,omitempty"`
	Summary        *string       `json:"summary,omitempty"`
	Status         *TicketStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p TicketPatch) IsEmpty() bool {
	return p.Title == nil && p.Category == nil && p.Description == nil && p.Email == nil &&
		p.AdditionalInfo == nil && p.Summary == nil && p.Status == nil
}

// Apply validates the patch and writes it onto t
func (p TicketPatch) Apply(t *Ticket) error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return ErrMissingField("title")
		}
		t.Title = *p.Title
	}
	if p.Category != nil {
		if !IsKnownCategory(*p.Category) {
			return ErrInvalidCategory(*p.Category)
		}
		t.Category = *p.Category
	}
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return ErrMissingField("description")
		}
		t.Description = *p.Description
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return ErrMissingField("email")
		}
		t.Email = *p.Email
	}
	if p.AdditionalInfo != nil {
		t.SetAdditionalInfo(*p.AdditionalInfo)
	}
	if p.Summary != nil {
		t.SetSummary(*p.Summary)
	}
	if p.Status != nil {
		if err := t.SetStatus(*p.Status); err != nil {
			return err
		}
	}
	t.touch()
	return nil
}
