// services/mail_service.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"

	"sitesmith/internal/models/db_models"
	"sitesmith/pkg/utils"
)

type IMailService interface {
	// SendExpiringCreditsWarning tells a user which credit lots are about to
	// age out. Best effort: ledger operations never wait on it.
	SendExpiringCreditsWarning(to, fullName string, lots []db_models.CreditLot) error
}

// SMTPConfig holds your SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@yourapp.com"
	FromName   string // display name
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail if STARTTLS not available

	AppName    string
	AppBaseURL string // e.g. "https://yourapp.com"
}

func LoadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("SMTP_FROM"),
		FromName:   os.Getenv("SMTP_FROM_NAME"),
		UseSSL:     port == 465,
		RequireTLS: true,
		AppName:    "SiteSmith",
		AppBaseURL: os.Getenv("APP_BASE_URL"),
	}
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("missing SMTP host or from address")
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("expiringHTML").Parse(expiringHTMLTemplate)),
		textTpl: template.Must(template.New("expiringText").Parse(expiringTextTemplate)),
	}, nil
}

type expiringLotView struct {
	Remaining int64
	ExpiresOn string
}

type expiringEmailData struct {
	FullName string
	Lots     []expiringLotView
	Total    int64
	BuyURL   string
	AppName  string
	Year     int
}

func (s *smtpMailService) SendExpiringCreditsWarning(to, fullName string, lots []db_models.CreditLot) error {
	if len(lots) == 0 {
		return nil
	}

	data := expiringEmailData{
		FullName: fullName,
		BuyURL:   strings.TrimRight(s.cfg.AppBaseURL, "/") + "/pricing",
		AppName:  s.cfg.AppName,
		Year:     time.Now().Year(),
	}
	for i := range lots {
		data.Total += lots[i].Remaining
		data.Lots = append(data.Lots, expiringLotView{
			Remaining: lots[i].Remaining,
			ExpiresOn: utils.FormatRFC3339(lots[i].ExpiresAt),
		})
	}

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}

	subject := fmt.Sprintf("%d credits expiring soon", data.Total)
	return s.send(to, subject, hb.String(), tb.String())
}

const expiringHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Credits expiring soon</title>
</head>
<body style="font-family:-apple-system,Segoe UI,Roboto,Arial,sans-serif;background:#f8fafc;color:#0f172a;margin:0;padding:32px 16px;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:12px;padding:32px;">
    <h1 style="font-size:22px;margin:0 0 16px;">Hi {{.FullName}},</h1>
    <p style="line-height:1.6;color:#475569;">Some of your {{.AppName}} credits are about to expire. Unused credits cannot be recovered once they age out.</p>
    <table style="width:100%;border-collapse:collapse;margin:24px 0;">
      <tr style="text-align:left;color:#64748b;font-size:13px;">
        <th style="padding:8px;border-bottom:1px solid #e2e8f0;">Credits</th>
        <th style="padding:8px;border-bottom:1px solid #e2e8f0;">Expires</th>
      </tr>
      {{range .Lots}}
      <tr>
        <td style="padding:8px;border-bottom:1px solid #f1f5f9;">{{.Remaining}}</td>
        <td style="padding:8px;border-bottom:1px solid #f1f5f9;">{{.ExpiresOn}}</td>
      </tr>
      {{end}}
    </table>
    <p style="margin:24px 0;">
      <a href="{{.BuyURL}}" style="display:inline-block;padding:12px 24px;background:#2563eb;color:#ffffff;text-decoration:none;border-radius:8px;font-weight:600;">Use your credits</a>
    </p>
    <p style="color:#94a3b8;font-size:12px;">© {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

const expiringTextTemplate = `Hi {{.FullName}},

Some of your {{.AppName}} credits are about to expire:

{{range .Lots}}- {{.Remaining}} credits, expires {{.ExpiresOn}}
{{end}}
Use them before they age out: {{.BuyURL}}

© {{.Year}} {{.AppName}}
`

// ------------------- SMTP Send -------------------

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.cfg.From
	if name := strings.TrimSpace(s.cfg.FromName); name != "" {
		fromHeader = fmt.Sprintf("%s <%s>", name, s.cfg.From)
	}
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		return s.push(c, auth, to, msg.Bytes())
	}

	// STARTTLS path (typically port 587)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	return s.push(c, auth, to, msg.Bytes())
}

func (s *smtpMailService) push(c *smtp.Client, auth smtp.Auth, to string, body []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(body); err != nil {
		return err
	}
	return w.Close()
}
