package tasks

import (
	"context"

	"github.com/sirupsen/logrus"
)

// InvitationMessage is what gets delivered to an invited person
type InvitationMessage struct {
	To        string
	AcceptURL string
}

// Mailer delivers invitation messages
type Mailer interface {
	SendInvitation(ctx context.Context, msg InvitationMessage) error
}

// LogMailer writes invitations to the log instead of sending them
type LogMailer struct{}

func (LogMailer) SendInvitation(_ context.Context, msg InvitationMessage) error {
	logrus.WithFields(logrus.Fields{
		"to":         msg.To,
		"accept_url": msg.AcceptURL,
	}).Info("invitation ready for delivery")
	return nil
}
