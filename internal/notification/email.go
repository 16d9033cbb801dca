package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// implicitTLSPort is the SMTPS port; other ports negotiate STARTTLS.
const implicitTLSPort = 465

// EmailConfig configures the SMTP notifier.
type EmailConfig struct {
	Host     string   `yaml:"host" json:"host" jsonschema:"title=SMTP host,default=smtp.gmail.com" validate:"required,hostname"`
	Port     int      `yaml:"port" json:"port" jsonschema:"title=SMTP port,default=465" validate:"required,min=1,max=65535"`
	Username string   `yaml:"username" json:"username" jsonschema:"title=SMTP user" validate:"required"`
	Password string   `yaml:"password" json:"password,omitempty" jsonschema:"title=SMTP password,description=Read from EMAIL_PASSWORD when empty" secret:"true" validate:"required"`
	From     string   `yaml:"from" json:"from" jsonschema:"title=Sender" validate:"required,email"`
	To       []string `yaml:"to" json:"to" jsonschema:"title=Recipients" validate:"required,min=1,dive,email"`
}

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends alerts as plain text email.
type EmailNotifier struct {
	config   EmailConfig
	sendMail sendMailFunc
	now      func() time.Time
}

func NewEmailNotifier(config EmailConfig) *EmailNotifier {
	sendMail := smtp.SendMail
	if config.Port == implicitTLSPort {
		sendMail = sendMailTLS
	}

	return &EmailNotifier{
		config:   config,
		sendMail: sendMail,
		now:      time.Now,
	}
}

func (n *EmailNotifier) Name() string {
	return "email"
}

func (n *EmailNotifier) Send(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(n.config.Host, strconv.Itoa(n.config.Port))
	auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)

	if err := n.sendMail(addr, auth, n.config.From, n.config.To, n.message(alert)); err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, fmt.Sprintf("email: send to %s", addr), err)
	}

	return nil
}

func (n *EmailNotifier) message(alert Alert) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", n.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(n.config.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", alert.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", n.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(alert.Message)
	b.WriteString("\r\n")

	return []byte(b.String())
}

// sendMailTLS is smtp.SendMail over an implicit TLS connection.
func sendMailTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write(msg); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
