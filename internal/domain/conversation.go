package domain

import "time"

// Speaker identifies who produced a turn
type Speaker string

const (
	SpeakerAssistant Speaker = "assistant"
	SpeakerUser      Speaker = "user"
)

// Turn is one message in the conversation transcript
type Turn struct {
	ID        string    `json:"id"`
	Type      Speaker   `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Stage is the wizard step a conversation is waiting on
type Stage string

const (
	StageAwaitingTitle          Stage = "awaiting_title"
	StageAwaitingCategory       Stage = "awaiting_category"
	StageAwaitingDescription    Stage = "awaiting_description"
	StageAwaitingEmail          Stage = "awaiting_email"
	StageAwaitingConfirmation   Stage = "awaiting_confirmation"
	StageAwaitingAdditionalInfo Stage = "awaiting_additional_info"
	StageSubmitted              Stage = "submitted"
)

// Valid reports whether s is a known stage
func (s Stage) Valid() bool {
	switch s {
	case StageAwaitingTitle, StageAwaitingCategory, StageAwaitingDescription, StageAwaitingEmail,
		StageAwaitingConfirmation, StageAwaitingAdditionalInfo, StageSubmitted:
		return true
	}
	return false
}

// PartialTicket accumulates ticket fields across turns until submission.
// TicketID is set once a submission has been stored.
type PartialTicket struct {
	Title          string `json:"title"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Email          string `json:"email"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
	Summary        string `json:"summary,omitempty"`
	TicketID       string `json:"ticketId,omitempty"`
}

// HasEmail reports whether an email was captured. The literal "No" is what a
// stray button click used to leave behind and does not count.
func (p PartialTicket) HasEmail() bool {
	return p.Email != "" && p.Email != "No"
}

// TicketUpdate holds the fields a single turn changed
type TicketUpdate struct {
	Title          *string `json:"title,omitempty"`
	Category       *string `json:"category,omitempty"`
	Description    *string `json:"description,omitempty"`
	Email          *string `json:"email,omitempty"`
	AdditionalInfo *string `json:"additionalInfo,omitempty"`
	Summary        *string `json:"summary,omitempty"`
	TicketID       *string `json:"ticketId,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u TicketUpdate) IsEmpty() bool {
	return u.Title == nil && u.Category == nil && u.Description == nil && u.Email == nil &&
		u.AdditionalInfo == nil && u.Summary == nil && u.TicketID == nil
}

// Apply merges the update into p and returns the result
func (u TicketUpdate) Apply(p PartialTicket) PartialTicket {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.AdditionalInfo != nil {
		p.AdditionalInfo = *u.AdditionalInfo
	}
	if u.Summary != nil {
		p.Summary = *u.Summary
	}
	if u.TicketID != nil {
		p.TicketID = *u.TicketID
	}
	return p
}

// StepInput is everything the engine needs to answer one user turn
type StepInput struct {
	Message string        `json:"message"`
	History []Turn        `json:"conversationHistory"`
	Ticket  PartialTicket `json:"ticketData"`
	State   Stage         `json:"state,omitempty"`
}

// LastAssistantContent returns the text of the most recent assistant turn, or ""
func (in StepInput) LastAssistantContent() string {
	for i := len(in.History) - 1; i >= 0; i-- {
		if in.History[i].Type == SpeakerAssistant {
			return in.History[i].Content
		}
	}
	return ""
}

// UserTurnCount counts user turns in the transcript
func (in StepInput) UserTurnCount() int {
	n := 0
	for _, t := range in.History {
		if t.Type == SpeakerUser {
			n++
		}
	}
	return n
}

// StepResult is the engine's answer to one user turn
type StepResult struct {
	Message     string        `json:"message"`
	TicketData  *TicketUpdate `json:"ticketData,omitempty"`
	ShowButtons bool          `json:"showButtons"`
	Buttons     []string      `json:"buttons,omitempty"`
	Reset       bool          `json:"reset,omitempty"`
	State       Stage         `json:"state,omitempty"`
}
