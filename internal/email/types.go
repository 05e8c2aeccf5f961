package email

// Message is one outgoing email.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// TemplateData is the data passed to message templates.
type TemplateData map[string]interface{}
