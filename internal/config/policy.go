package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy is the triage business policy: the category taxonomy, escalation
// keyword lists, thresholds, reply templates, and model call parameters.
// Compiled-in defaults are used unless a YAML policy file overrides them, so
// support staff can tune behavior without a code change.
type Policy struct {
	Categories             []Category        `yaml:"categories"`
	LegalKeywords          []string          `yaml:"legal_keywords"`
	RefundKeywords         []string          `yaml:"refund_keywords"`
	ConfidenceThreshold    float64           `yaml:"confidence_threshold"`
	RepeatContactThreshold int               `yaml:"repeat_contact_threshold"`
	Templates              map[string]string `yaml:"templates"`          // category -> reply text
	GenericTemplates       map[string]string `yaml:"generic_templates"`  // sentiment -> reply text
	Classify               ModelParams       `yaml:"classify"`
	Reply                  ModelParams       `yaml:"reply"`
}

// Category is one entry of the fixed support taxonomy.
type Category struct {
	Name          string   `yaml:"name"`
	SubCategories []string `yaml:"sub_categories"`
}

// ModelParams are the sampling parameters for one kind of model call.
type ModelParams struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// DefaultCategory is assigned when classification fails or returns an
// unknown category.
const DefaultCategory = "General Queries"

// DefaultPolicy returns the built-in triage policy.
func DefaultPolicy() *Policy {
	return &Policy{
		Categories: []Category{
			{Name: "Technical Issues", SubCategories: []string{
				"Platform Access", "Video Playback", "Course Materials",
				"Account Login", "Browser Compatibility",
			}},
			{Name: "Payment & Billing", SubCategories: []string{
				"Refund Request", "Payment Failed", "Invoice",
				"Subscription", "Course Pricing",
			}},
			{Name: "Course Content", SubCategories: []string{
				"Course Completion", "Certificate", "Curriculum",
				"Course Duration", "Content Quality",
			}},
			{Name: "Account Management", SubCategories: []string{
				"Profile Update", "Password Reset", "Account Deletion",
				"Email Change", "Two Factor Auth",
			}},
			{Name: DefaultCategory, SubCategories: []string{
				"Inquiry", "Suggestion", "Feedback", "Other",
			}},
		},
		// Matched as case-insensitive substrings of the raw body. This is
		// deliberately broad: "legalize" matches "legal" and "issue" matches
		// "sue". The bias is toward escalating, never away from it.
		LegalKeywords: []string{
			"legal", "lawsuit", "lawyer", "attorney", "sue", "court", "dispute",
		},
		RefundKeywords: []string{
			"refund", "money back", "chargeback", "charge back",
			"reimbursement", "get my money back",
		},
		ConfidenceThreshold:    0.6,
		RepeatContactThreshold: 2,
		Templates: map[string]string{
			"Technical Issues":   "Thank you for reaching out! We're sorry you're running into a technical issue. Please try clearing your browser cache and logging in again. If the problem persists, reply with your account email and the course name and our technical team will investigate immediately.",
			"Payment & Billing":  "Thank you for contacting us about billing. Please reply with your order ID and the email address on your account so we can look into this right away. Our billing team typically responds within one business day.",
			"Course Content":     "Thanks for your question about the course content. You can find the detailed curriculum, duration, and certificate details on the course page. If you can tell us which course you're asking about, we'll send over specifics.",
			"Account Management": "Thank you for reaching out about your account. Most account changes (profile, password, email) can be made from Account Settings. If you're unable to make the change yourself, reply with your registered email and we'll help you securely.",
			DefaultCategory:      "Thank you for reaching out to us! We appreciate your inquiry. Our team will review your message and get back to you within 24 hours. In the meantime, if you have any urgent questions, please let us know!",
		},
		GenericTemplates: map[string]string{
			"Negative": "Thank you for reaching out. We sincerely apologize for any inconvenience you've experienced. Please provide us with more details along with your account email and we'll prioritize your case.",
			"Positive": "Thank you so much for your kind message! We're thrilled that you're having a great experience. If you have any questions or need assistance, please don't hesitate to reach out!",
			"Neutral":  "Thank you for contacting us. We appreciate your inquiry and will get back to you shortly with a helpful response. Please let us know if there's anything else we can assist you with.",
		},
		Classify: ModelParams{Temperature: 0.7, MaxTokens: 500},
		Reply:    ModelParams{Temperature: 0.5, MaxTokens: 300},
	}
}

// LoadPolicy returns the default policy, overlaid with the YAML file at path
// when path is non-empty. Fields absent from the file keep their defaults.
func LoadPolicy(path string) (*Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}

	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("confidence_threshold must be within [0, 1]; got %v", p.ConfidenceThreshold)
	}
	if p.RepeatContactThreshold < 1 {
		return nil, fmt.Errorf("repeat_contact_threshold must be at least 1; got %d", p.RepeatContactThreshold)
	}
	if len(p.Categories) == 0 {
		return nil, fmt.Errorf("policy must define at least one category")
	}

	return p, nil
}

// CategoryNames returns the category names in taxonomy order.
func (p *Policy) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}

// KnownCategory reports whether name is part of the taxonomy.
func (p *Policy) KnownCategory(name string) bool {
	for _, c := range p.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Template returns the reply template for a category, falling back to the
// sentiment-keyed generic template for unmapped categories.
func (p *Policy) Template(category string, sentiment string) string {
	if t, ok := p.Templates[category]; ok {
		return t
	}
	if t, ok := p.GenericTemplates[sentiment]; ok {
		return t
	}
	return p.GenericTemplates["Neutral"]
}
