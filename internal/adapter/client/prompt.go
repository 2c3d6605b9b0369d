package client

import "strings"

// contextPlaceholder is the token system prompts use to mark where the
// itinerary text goes (usecase.DefaultSystemPrompt carries it).
const contextPlaceholder = "{trip_context}"

// renderSystemPrompt substitutes the loaded itinerary into the system
// prompt. Prompts without the placeholder get the context appended as
// a fenced block; an empty context leaves them untouched.
func renderSystemPrompt(systemPrompt, tripContext string) string {
	if strings.Contains(systemPrompt, contextPlaceholder) {
		return strings.ReplaceAll(systemPrompt, contextPlaceholder, tripContext)
	}
	if tripContext == "" {
		return systemPrompt
	}
	return systemPrompt + "\n\nTrip itinerary:\n```" + tripContext + "```"
}
