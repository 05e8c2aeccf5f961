package email

import "context"

// Provider delivers messages.
type Provider interface {
	Send(ctx context.Context, msg *Message) error
	Close() error
}

// TemplateRenderer turns a named template into a message body.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
