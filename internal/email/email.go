// Package email sends the optional admin notification when an error report
// is submitted.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"tramites/internal/config"
	"tramites/internal/reports"
)

// Notifier sends report-submission notifications over SMTP. Disabled (a
// no-op) unless SMTP and a notify address are configured.
type Notifier struct {
	cfg     *config.Config
	enabled bool
	log     zerolog.Logger
}

// NewNotifier creates the notifier.
func NewNotifier(cfg *config.Config, log zerolog.Logger) *Notifier {
	n := &Notifier{cfg: cfg, enabled: cfg.IsEmailEnabled(), log: log}
	if n.enabled {
		log.Info().Str("host", cfg.SMTPHost).Str("to", cfg.ReportNotifyAddress).Msg("report email notifications enabled")
	} else {
		log.Info().Msg("report email notifications disabled (SMTP not configured)")
	}
	return n
}

// IsEnabled returns true if notifications are configured.
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// NotifyReportSubmitted emails the configured admin address about a new
// report. Failures are logged, never propagated: notification is
// best-effort and must not affect the submission result.
func (n *Notifier) NotifyReportSubmitted(r *reports.Report) {
	if !n.enabled {
		return
	}

	subject := fmt.Sprintf("Nuevo reporte de error: %s", r.ID)

	var body strings.Builder
	fmt.Fprintf(&body, "Se recibió un nuevo reporte de error.\r\n\r\n")
	fmt.Fprintf(&body, "ID: %s\r\n", r.ID)
	fmt.Fprintf(&body, "Tipo: %s\r\n", r.TipoError)
	if r.NumeroRadicado != "" {
		fmt.Fprintf(&body, "Radicado: %s\r\n", r.NumeroRadicado)
	}
	fmt.Fprintf(&body, "Fecha: %s\r\n\r\n", r.FechaReporte.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&body, "%s\r\n", r.Descripcion)

	if err := n.send(n.cfg.ReportNotifyAddress, subject, body.String()); err != nil {
		n.log.Warn().Err(err).Str("report_id", r.ID).Msg("failed to send report notification")
	}
}

func (n *Notifier) send(to, subject, textBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.SMTPFrom)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(textBody)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)

	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, n.cfg.SMTPFrom, []string{to}, []byte(msg.String()))
}
