package email

import (
	"context"
	"fmt"
	"html"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type Config struct {
	From             string
	Site             mail.Site
	UseHTTPS         bool
	HTMLEmail        bool
	UsePlainTemplate bool
	WithoutUsernames bool
}

// Dispatcher renders a named email and enqueues exactly one message per Send.
type Dispatcher struct {
	log      logging.Logger
	renderer mail.Renderer
	outbox   mail.Outbox
	config   Config
	stripper *bluemonday.Policy
}

func NewDispatcher(
	log logging.Logger,
	renderer mail.Renderer,
	outbox mail.Outbox,
	config Config,
) *Dispatcher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if renderer == nil {
		panic(e.NewNilArgumentError("renderer"))
	}
	if outbox == nil {
		panic(e.NewNilArgumentError("outbox"))
	}
	return &Dispatcher{
		log:      log,
		renderer: renderer,
		outbox:   outbox,
		config:   config,
		stripper: bluemonday.StrictPolicy(),
	}
}

func templatePaths(name string, suffix string) (subjectPath string, textPath string, htmlPath string) {
	subjectPath = fmt.Sprintf("emails/%s_email_subject%s.txt", name, suffix)
	textPath = fmt.Sprintf("emails/%s_email_message%s.txt", name, suffix)
	htmlPath = fmt.Sprintf("emails/%s_email_message%s.html", name, suffix)
	return subjectPath, textPath, htmlPath
}

// Send renders the name/suffix templates with data and enqueues the message for recipients.
func (d *Dispatcher) Send(
	ctx context.Context,
	name string,
	suffix string,
	data map[string]interface{},
	recipients []string,
) error {
	m, err := d.compose(name, suffix, data, recipients)
	if err != nil {
		d.log.Error(
			ctx,
			"Could not render email.",
			logging.Entry("template", name+suffix),
			logging.Entry("err", err),
		)
		return err
	}
	if err := d.outbox.Enqueue(ctx, m); err != nil {
		return err
	}
	d.log.Debug(ctx, "Email has been enqueued.", logging.Entry("message", m))
	return nil
}

func (d *Dispatcher) compose(
	name string,
	suffix string,
	data map[string]interface{},
	recipients []string,
) (m mail.Message, err error) {
	subjectPath, textPath, htmlPath := templatePaths(name, suffix)
	vars := d.vars(data)

	subject, err := d.renderer.Render(subjectPath, vars)
	if err != nil {
		return m, err
	}
	m = mail.Message{
		ID:      uuid.NewString(),
		From:    d.config.From,
		To:      recipients,
		Subject: strings.Join(strings.Fields(subject), " "),
	}

	if !d.config.HTMLEmail {
		m.Text, err = d.renderer.Render(textPath, vars)
		return m, err
	}

	m.HTML, err = d.renderer.Render(htmlPath, vars)
	if err != nil {
		return m, err
	}
	if d.config.UsePlainTemplate && d.renderer.Exists(textPath) {
		m.Text, err = d.renderer.Render(textPath, vars)
		return m, err
	}
	m.Text = d.plainText(m.HTML)
	return m, nil
}

func (d *Dispatcher) vars(data map[string]interface{}) map[string]interface{} {
	vars := map[string]interface{}{
		"without_usernames": d.config.WithoutUsernames,
		"protocol":          mail.Protocol(d.config.UseHTTPS),
		"site":              d.config.Site,
	}
	for k, v := range data {
		vars[k] = v
	}
	return vars
}

func (d *Dispatcher) plainText(htmlBody string) string {
	lines := strings.Split(html.UnescapeString(d.stripper.Sanitize(htmlBody)), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
