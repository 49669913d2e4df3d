// Package mail queues operator notifications and delivers them through SendGrid.
package mail

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey    string `mapstructure:"sendgrid_api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_email_name"`
	// AlertRecipients receive capacity alerts.
	AlertRecipients []string      `mapstructure:"alert_recipients"`
	WorkerInterval  time.Duration `mapstructure:"worker_interval"`
}

// Enabled reports whether mail delivery is configured.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

type Mailer struct {
	cli            dependency.Sender
	mailRepository dependency.Mail
	from           *mail.Email
	c              *Config
	ctx            context.Context
	cancel         context.CancelFunc
	templates      map[string]*template.Template
}

func New(c *Config, mailRepository dependency.Mail) (*Mailer, error) {
	if c.APIKey == "" || c.FromEmail == "" || c.FromName == "" {
		return nil, fmt.Errorf("incomplete mailer config: api key, from_email and from_email_name are required")
	}
	return newMailer(c, sendgrid.NewSendClient(c.APIKey), mailRepository)
}

func newMailer(c *Config, cli dependency.Sender, mailRepository dependency.Mail) (*Mailer, error) {
	if c.WorkerInterval <= 0 {
		c.WorkerInterval = time.Minute
	}
	m := &Mailer{
		cli:            cli,
		mailRepository: mailRepository,
		from:           mail.NewEmail(c.FromName, c.FromEmail),
		c:              c,
		templates:      make(map[string]*template.Template),
	}
	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return m, nil
}

func (m *Mailer) parseTemplates() error {
	const templateDir = "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		tmpl, err := template.ParseFS(templatesFS, filepath.Join(templateDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}
		m.templates[entry.Name()] = tmpl
	}
	return nil
}

func (m *Mailer) render(tn string, data any) (string, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return "", fmt.Errorf("template not found: %v", tn)
	}
	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return "", fmt.Errorf("error executing template: %w", err)
	}
	return body.String(), nil
}
