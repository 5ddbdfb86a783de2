// Package prompt constructs the model prompts used by the classifier and the
// reply generator. All methods are pure functions with no side effects.
package prompt

import (
	"fmt"
	"strings"

	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/pkg/models"
)

// Builder renders prompt strings. Zero value is ready to use.
type Builder struct{}

// ClassifyParams defines inputs for a classification prompt.
type ClassifyParams struct {
	Subject    string
	Body       string
	Categories []config.Category
}

// ReplyParams defines inputs for a reply-generation prompt.
type ReplyParams struct {
	Email          models.Email
	Classification models.Classification
}

// ClassifySystem returns the system instructions for classification calls.
func (b Builder) ClassifySystem() string {
	return "You are a customer-support email classifier. " +
		"Respond with a single JSON object and nothing else. " +
		"Do not include markdown fences or commentary."
}

// BuildClassifyPrompt returns the user prompt instructing the model to emit
// the fixed classification JSON schema.
func (b Builder) BuildClassifyPrompt(p ClassifyParams) string {
	var sb strings.Builder

	sb.WriteString("Classify the following customer-support email.\n\n")
	sb.WriteString("Allowed categories and their sub-categories:\n")
	for _, c := range p.Categories {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Name, strings.Join(c.SubCategories, ", "))
	}

	sb.WriteString("\nReturn exactly this JSON schema:\n")
	sb.WriteString(`{"category": "<one of the allowed categories>", ` +
		`"sub_category": "<free text>", ` +
		`"urgency": "Low|Medium|High", ` +
		`"sentiment": "Positive|Neutral|Negative", ` +
		`"escalate_to_human": true|false, ` +
		`"confidence": <number between 0.0 and 1.0>}`)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Subject: %s\n", p.Subject)
	fmt.Fprintf(&sb, "Body:\n%s\n", p.Body)

	return sb.String()
}

// ReplySystem returns the guardrail instructions for reply drafting.
func (b Builder) ReplySystem() string {
	return "You are a professional, empathetic customer-support agent drafting a reply email. " +
		"Never promise a refund or any specific refund outcome. " +
		"If the customer has not provided an order ID or account email, ask for it. " +
		"Keep the reply concise, polite, and directly helpful. " +
		"Return only the reply text, with no subject line or signature placeholders."
}

// BuildReplyPrompt returns the user prompt for drafting a reply.
func (b Builder) BuildReplyPrompt(p ReplyParams) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Category: %s\n", p.Classification.Category)
	fmt.Fprintf(&sb, "Sub-category: %s\n", p.Classification.SubCategory)
	fmt.Fprintf(&sb, "Customer sentiment: %s\n\n", p.Classification.Sentiment)
	fmt.Fprintf(&sb, "Customer email subject: %s\n", p.Email.Subject)
	fmt.Fprintf(&sb, "Customer email body:\n%s\n\n", p.Email.Body)
	sb.WriteString("Draft the reply now.")

	return sb.String()
}
