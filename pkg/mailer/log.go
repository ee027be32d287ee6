package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogMailer only logs outgoing mail. Used when MAIL_SEND_ENABLED=false.
type LogMailer struct {
	Logger *logrus.Logger
}

func NewLogMailer(logger *logrus.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (l *LogMailer) Send(ctx context.Context, to, subject, html string) error {
	l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug(html)
	l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail sending disabled; message logged only")
	return nil
}
