package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
)

const defaultSummaryTimeout = 5 * time.Second

// TicketSubmitter stores a finished chat ticket and returns its id
type TicketSubmitter interface {
	SubmitTicket(ctx context.Context, partial domain.PartialTicket) (string, error)
}

// ConversationUseCase drives the ticket wizard one user turn at a time. It
// holds no per-conversation state; the caller round-trips the transcript,
// the partial ticket and the stage.
type ConversationUseCase struct {
	summarizer     ports.Summarizer
	tickets        TicketSubmitter
	summaryTimeout time.Duration
	logger         logger.Logger
}

// NewConversationUseCase creates the engine. summarizer may be nil, in which
// case the fallback summaries are always used.
func NewConversationUseCase(summarizer ports.Summarizer, tickets TicketSubmitter, summaryTimeout time.Duration, log logger.Logger) *ConversationUseCase {
	if summaryTimeout <= 0 {
		summaryTimeout = defaultSummaryTimeout
	}
	return &ConversationUseCase{
		summarizer:     summarizer,
		tickets:        tickets,
		summaryTimeout: summaryTimeout,
		logger:         log.WithFields(map[string]interface{}{"component": "conversation"}),
	}
}

// Step answers one user turn
func (uc *ConversationUseCase) Step(ctx context.Context, in domain.StepInput) *domain.StepResult {
	uc.logger.Debug(ctx, "Conversation turn", map[string]interface{}{
		"state":       in.State,
		"user_turns":  in.UserTurnCount(),
		"history_len": len(in.History),
		"has_email":   in.Ticket.HasEmail(),
		"ticket_id":   in.Ticket.TicketID,
	})

	answer := strings.ToLower(in.Message)

	if strings.TrimSpace(answer) == "start" {
		return uc.restart()
	}
	if answer == "no" && in.Ticket.HasEmail() {
		return uc.submit(ctx, in.Ticket)
	}
	if answer == "yes" && in.Ticket.HasEmail() {
		return uc.inviteAdditionalInfo()
	}

	if in.State.Valid() {
		return uc.dispatchByStage(ctx, in, answer)
	}
	return uc.dispatchByTranscript(ctx, in, answer)
}

// dispatchByStage routes on the explicit stage sent by the client
func (uc *ConversationUseCase) dispatchByStage(ctx context.Context, in domain.StepInput, answer string) *domain.StepResult {
	switch in.State {
	case domain.StageAwaitingTitle, domain.StageSubmitted:
		return uc.captureTitle(in)
	case domain.StageAwaitingCategory:
		return uc.selectCategory(in)
	case domain.StageAwaitingDescription:
		return uc.captureDescription(in)
	case domain.StageAwaitingEmail:
		if isYesNo(answer) {
			return &domain.StepResult{Message: emailPrompt, State: domain.StageAwaitingEmail}
		}
		return uc.captureEmail(ctx, in)
	case domain.StageAwaitingConfirmation:
		if isYesNo(answer) {
			return uc.confirm(ctx, in, answer)
		}
	case domain.StageAwaitingAdditionalInfo:
		return uc.captureAdditionalInfo(ctx, in)
	}
	return uc.trouble(in.State)
}

// dispatchByTranscript infers the stage from the last assistant prompt, for
// clients that do not send a state
func (uc *ConversationUseCase) dispatchByTranscript(ctx context.Context, in domain.StepInput, answer string) *domain.StepResult {
	last := in.LastAssistantContent()

	switch {
	case strings.Contains(last, "category"):
		return uc.selectCategory(in)
	case strings.Contains(last, "describe"):
		return uc.captureDescription(in)
	case strings.Contains(last, "email") && !isYesNo(answer):
		return uc.captureEmail(ctx, in)
	case containsAny(last, "add", "information", "submit", "summary") && isYesNo(answer):
		// only reachable without an email on file; the top-level yes/no checks win otherwise
		return uc.confirm(ctx, in, answer)
	case strings.Contains(last, "provide"):
		return uc.captureAdditionalInfo(ctx, in)
	}

	if in.UserTurnCount() == 1 || !containsAny(last, "category", "add", "information", "describe", "email") {
		return uc.captureTitle(in)
	}
	return uc.trouble("")
}

func (uc *ConversationUseCase) restart() *domain.StepResult {
	return &domain.StepResult{
		Message: greetingMessage,
		Reset:   true,
		State:   domain.StageAwaitingTitle,
	}
}

func (uc *ConversationUseCase) inviteAdditionalInfo() *domain.StepResult {
	return &domain.StepResult{
		Message: additionalInfoPrompt,
		State:   domain.StageAwaitingAdditionalInfo,
	}
}

func (uc *ConversationUseCase) confirm(ctx context.Context, in domain.StepInput, answer string) *domain.StepResult {
	if answer == "no" {
		return uc.submit(ctx, in.Ticket)
	}
	return uc.inviteAdditionalInfo()
}

func (uc *ConversationUseCase) captureTitle(in domain.StepInput) *domain.StepResult {
	update := &domain.TicketUpdate{Title: strPtr(in.Message)}
	if in.Ticket.TicketID != "" {
		// a new title starts a new ticket; drop the id of the one already filed
		update.TicketID = strPtr("")
	}
	return &domain.StepResult{
		Message:     categoryPrompt,
		TicketData:  update,
		ShowButtons: true,
		Buttons:     domain.CategoryNames(),
		State:       domain.StageAwaitingCategory,
	}
}

func (uc *ConversationUseCase) selectCategory(in domain.StepInput) *domain.StepResult {
	category, ok := domain.MatchCategory(in.Message)
	if !ok {
		return &domain.StepResult{
			Message:     categoryRetryPrompt,
			ShowButtons: true,
			Buttons:     domain.CategoryNames(),
			State:       domain.StageAwaitingCategory,
		}
	}
	return &domain.StepResult{
		Message:    descriptionPrompt,
		TicketData: &domain.TicketUpdate{Category: strPtr(category)},
		State:      domain.StageAwaitingDescription,
	}
}

func (uc *ConversationUseCase) captureDescription(in domain.StepInput) *domain.StepResult {
	return &domain.StepResult{
		Message:    emailPrompt,
		TicketData: &domain.TicketUpdate{Description: strPtr(in.Message)},
		State:      domain.StageAwaitingEmail,
	}
}

func (uc *ConversationUseCase) captureEmail(ctx context.Context, in domain.StepInput) *domain.StepResult {
	email := strings.TrimSpace(in.Message)
	ticket := in.Ticket
	ticket.Email = email

	summary := uc.summarize(ctx, ticket, emailSummaryFallback)

	return &domain.StepResult{
		Message:     emailCapturedMessage(email, ticketSummaryBlock(ticket, "Summary", summary)),
		TicketData:  &domain.TicketUpdate{Email: strPtr(email), Summary: strPtr(summary)},
		ShowButtons: true,
		Buttons:     append([]string(nil), yesNoButtons...),
		State:       domain.StageAwaitingConfirmation,
	}
}

func (uc *ConversationUseCase) submit(ctx context.Context, ticket domain.PartialTicket) *domain.StepResult {
	id, err := uc.tickets.SubmitTicket(ctx, ticket)
	if err != nil {
		uc.logger.Error(ctx, "Failed to save chat ticket", err, map[string]interface{}{"ticket_id": ticket.TicketID})
		return &domain.StepResult{
			Message: saveFailedMessage(err),
			State:   domain.StageAwaitingConfirmation,
		}
	}

	uc.logger.Info(ctx, "Chat ticket submitted", map[string]interface{}{"ticket_id": id})
	return &domain.StepResult{
		Message:    submittedMessage(ticket.Email),
		TicketData: &domain.TicketUpdate{TicketID: strPtr(id)},
		State:      domain.StageSubmitted,
	}
}

func (uc *ConversationUseCase) captureAdditionalInfo(ctx context.Context, in domain.StepInput) *domain.StepResult {
	ticket := in.Ticket
	ticket.Description = in.Ticket.Description + "\n\nAdditional Information: " + in.Message
	ticket.AdditionalInfo = in.Message
	ticket.Summary = uc.summarize(ctx, ticket, updatedSummaryFallback)

	id, err := uc.tickets.SubmitTicket(ctx, ticket)
	if err != nil {
		uc.logger.Error(ctx, "Failed to save chat ticket", err, map[string]interface{}{"ticket_id": ticket.TicketID})
		return &domain.StepResult{
			Message: saveFailedMessage(err),
			State:   domain.StageAwaitingAdditionalInfo,
		}
	}

	uc.logger.Info(ctx, "Chat ticket submitted with additional information", map[string]interface{}{"ticket_id": id})
	return &domain.StepResult{
		Message: additionalInfoSubmittedMessage(ticket.Email, ticketSummaryBlock(ticket, "Updated Summary", ticket.Summary)),
		TicketData: &domain.TicketUpdate{
			Description:    strPtr(ticket.Description),
			AdditionalInfo: strPtr(ticket.AdditionalInfo),
			Summary:        strPtr(ticket.Summary),
			TicketID:       strPtr(id),
		},
		State: domain.StageSubmitted,
	}
}

func (uc *ConversationUseCase) trouble(state domain.Stage) *domain.StepResult {
	return &domain.StepResult{Message: troubleMessage, State: state}
}

// summarize calls the summarizer under a bounded timeout and falls back on any failure
func (uc *ConversationUseCase) summarize(ctx context.Context, ticket domain.PartialTicket, fallback string) string {
	if uc.summarizer == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, uc.summaryTimeout)
	defer cancel()

	start := time.Now()
	summary, err := uc.summarizer.Summarize(ctx, ports.SummaryRequest{
		Title:       ticket.Title,
		Category:    ticket.Category,
		Description: ticket.Description,
		Email:       ticket.Email,
	})
	if err != nil || strings.TrimSpace(summary) == "" {
		uc.logger.Warn(ctx, "Summarizer unavailable, using fallback summary", map[string]interface{}{
			"error":       errString(err),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return fallback
	}
	return summary
}

func isYesNo(answer string) bool {
	return answer == "yes" || answer == "no"
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func strPtr(s string) *string {
	return &s
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
