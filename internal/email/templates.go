package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateAccountApproved      = "account_approved"
	TemplateAccountVerified      = "account_verified"
	TemplateAccessRequestDecided = "access_request_decided"
	TemplateApplicationReviewed  = "application_reviewed"
)

var builtinTemplates = map[string]string{
	TemplateAccountApproved: `<p>Hi {{.Name}},</p>
<p>Your investor account on iBLAZE has been approved. You can now request access to student ideas.</p>`,
	TemplateAccountVerified: `<p>Hi {{.Name}},</p>
<p>Your employer account on iBLAZE has been verified. You can now post jobs.</p>`,
	TemplateAccessRequestDecided: `<p>Hi {{.Name}},</p>
<p>Your request to access the idea "{{.IdeaTitle}}" was {{.Status}}.</p>`,
	TemplateApplicationReviewed: `<p>Hi {{.Name}},</p>
<p>Your application for "{{.JobTitle}}" is now {{.Status}}.</p>`,
}

// TemplateManager holds parsed html templates by name.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the notification templates.
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
