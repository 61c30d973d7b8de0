package usecase

import (
	"fmt"

	"github.com/n3xa/n3xa/internal/ports"
)

const summarySystemPrompt = `You are a friendly and helpful AI assistant that creates detailed summaries of support tickets.
Your task is to analyze the ticket information and create a warm, professional summary that captures the key issue,
context, and potential impact. Write exactly 3 sentences that are informative and empathetic.`

// templateSummary is the canned summary used when no LLM is configured or the LLM fails
func templateSummary(req ports.SummaryRequest) string {
	return fmt.Sprintf(
		"The user has reported an issue with '%s' which falls under the %s category. The problem described is: %s. This appears to be a standard support request that requires attention from our technical team.",
		req.Title, req.Category, req.Description,
	)
}

func summaryUserPrompt(req ports.SummaryRequest) string {
	return fmt.Sprintf(`Please create a friendly and detailed summary for this support ticket:

Title: %s
Category: %s
Description: %s
Email: %s

Summary:`, req.Title, req.Category, req.Description, req.Email)
}
