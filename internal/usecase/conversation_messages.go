package usecase

import (
	"fmt"

	"github.com/n3xa/n3xa/internal/domain"
)

// Assistant prompts. The legacy dispatcher keys on words inside these texts
// ("category", "describe", "email", "add", "provide"), so wording changes
// alter routing for clients that do not send a state.
const (
	greetingMessage = "Hello! I'm your support assistant. I'll help you create a ticket so our team can get back to you quickly.\n\n" +
		"Let's get started — what's the **title of your issue**?"
	categoryPrompt         = "Got it. What **category** does this issue fall under?\n\nPlease select a category:"
	categoryRetryPrompt    = "I didn't recognize that category. Please select a category:"
	descriptionPrompt      = "Thanks. Could you please **describe the issue in more detail**?\nInclude any steps you've already tried."
	emailPrompt            = "Got it. What is your **email address** so we can contact you?"
	additionalInfoPrompt   = "Sure — please provide the information you'd like to add."
	troubleMessage         = "I'm having trouble processing your request. Please try again or type 'start' to begin a new ticket."
	emailSummaryFallback   = "User has provided issue details and contact information."
	updatedSummaryFallback = "Updated summary based on additional information provided."
)

var yesNoButtons = []string{"Yes", "No"}

func ticketSummaryBlock(t domain.PartialTicket, summaryLabel, summary string) string {
	return fmt.Sprintf("**Title**: %s\n**Category**: %s\n**Description**: %s\n**Email**: %s\n**%s**: _%s_",
		t.Title, t.Category, t.Description, t.Email, summaryLabel, summary)
}

func emailCapturedMessage(email, block string) string {
	return fmt.Sprintf("Perfect — we'll contact you at **%s**.\n\nHere's a summary of your ticket so far:\n%s\n\n"+
		"Is there **any information you'd like to add** before we submit this ticket?", email, block)
}

func submittedMessage(email string) string {
	return fmt.Sprintf("✅ Got it — your support ticket has been submitted!\nA technician will contact you at **%s** soon.\n\n"+
		"Need anything else? Type **\"start\"** to open a new ticket.", email)
}

func additionalInfoSubmittedMessage(email, block string) string {
	return fmt.Sprintf("✅ Thanks for the additional information.\n\nHere's your updated ticket summary:\n%s\n\n"+
		"Your support ticket has been submitted!\nWe'll be in touch at **%s** as soon as possible.\n\n"+
		"You can type **\"start\"** to open a new ticket anytime.", block, email)
}

func saveFailedMessage(err error) string {
	return fmt.Sprintf("❌ Sorry, there was an error saving your ticket. Please try again or contact support.\n\nError: %s", err.Error())
}
