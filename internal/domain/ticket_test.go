package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTicket(t *testing.T) {
	ticket := NewTicket("VPN drops", "Connection", "Drops every 10 minutes", "a@b.com")

	if ticket.ID == "" {
		t.Error("Expected ID to be set")
	}
	if ticket.Title != "VPN drops" {
		t.Errorf("Expected title %s, got %s", "VPN drops", ticket.Title)
	}
	if ticket.Category != "Connection" {
		t.Errorf("Expected category %s, got %s", "Connection", ticket.Category)
	}
	if ticket.Status != TicketStatusOpen {
		t.Errorf("Expected status %s, got %s", TicketStatusOpen, ticket.Status)
	}
	if ticket.AdditionalInfo != nil || ticket.Summary != nil {
		t.Error("Expected optional fields to be nil")
	}
	if !ticket.CreatedAt.Equal(ticket.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should be equal initially")
	}
}

func TestNewTicket_UniqueIDs(t *testing.T) {
	a := NewTicket("a", "Printing", "d", "e")
	b := NewTicket("a", "Printing", "d", "e")
	if a.ID == b.ID {
		t.Errorf("Expected distinct ids, both were %s", a.ID)
	}
}

func TestTicket_SetStatus(t *testing.T) {
	ticket := NewTicket("t", "Printing", "d", "e")
	before := ticket.UpdatedAt
	time.Sleep(time.Millisecond)

	if err := ticket.SetStatus(TicketStatusSolved); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ticket.Status != TicketStatusSolved {
		t.Errorf("Expected status %s, got %s", TicketStatusSolved, ticket.Status)
	}
	if !ticket.UpdatedAt.After(before) {
		t.Error("UpdatedAt should move forward on status change")
	}
}

func TestTicket_SetStatusInvalid(t *testing.T) {
	ticket := NewTicket("t", "Printing", "d", "e")

	err := ticket.SetStatus("pending")
	if err == nil {
		t.Fatal("Expected error for unknown status")
	}
	if !IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if ticket.Status != TicketStatusOpen {
		t.Errorf("Status should be unchanged, got %s", ticket.Status)
	}
}

func TestTicket_Matches(t *testing.T) {
	ticket := NewTicket("Printer jammed", "Printing", "Paper stuck in tray 2", "ops@corp.io")
	ticket.SetSummary("Hardware fault on the second floor")

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"printer", true},
		{"TRAY", true},
		{"corp.io", true},
		{"second floor", true},
		{"vpn", false},
	}
	for _, tt := range tests {
		if got := ticket.Matches(tt.term); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestTicketPatch_Apply(t *testing.T) {
	ticket := NewTicket("t", "Printing", "d", "e")
	title := "New title"
	status := TicketStatusClosed
	info := "extra"

	patch := TicketPatch{Title: &title, Status: &status, AdditionalInfo: &info}
	if err := patch.Apply(ticket); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ticket.Title != title {
		t.Errorf("Expected title %s, got %s", title, ticket.Title)
	}
	if ticket.Status != TicketStatusClosed {
		t.Errorf("Expected status closed, got %s", ticket.Status)
	}
	if ticket.AdditionalInfo == nil || *ticket.AdditionalInfo != "extra" {
		t.Errorf("Expected additional info to be set, got %v", ticket.AdditionalInfo)
	}
}

func TestTicketPatch_ApplyRejectsBadValues(t *testing.T) {
	empty := "  "
	bogus := "Networking"
	bad := TicketStatus("archived")

	tests := []struct {
		name  string
		patch TicketPatch
	}{
		{"blank title", TicketPatch{Title: &empty}},
		{"unknown category", TicketPatch{Category: &bogus}},
		{"unknown status", TicketPatch{Status: &bad}},
		{"blank email", TicketPatch{Email: &empty}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := NewTicket("t", "Printing", "d", "e")
			if err := tt.patch.Apply(ticket); !IsValidationError(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestTicketStatus_Valid(t *testing.T) {
	for _, s := range AllTicketStatuses() {
		if !s.Valid() {
			t.Errorf("Expected %s to be valid", s)
		}
	}
	if TicketStatus("OPEN").Valid() {
		t.Error("Status values are lower case")
	}
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := ErrStore("create", errors.New("disk full"))
	if !errors.Is(wrapped, ErrStore("other", nil)) {
		t.Error("Expected store errors to match by code")
	}
	if errors.Is(wrapped, ErrTicketNotFound) {
		t.Error("Store error should not match not-found")
	}
	if errors.Unwrap(wrapped).Error() != "disk full" {
		t.Error("Expected cause to unwrap")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrMissingField("title"), 400},
		{ErrInvalidCredentials(), 401},
		{ErrTicketNotFound, 404},
		{ErrRateLimitExceeded("k"), 429},
		{ErrSummarizerUnavailable("x", nil), 502},
		{ErrStore("create", nil), 503},
		{errors.New("plain"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
