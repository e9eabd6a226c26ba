package notify

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v3"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
)

type MailgunNotifier struct {
	mg            mailgun.Mailgun
	sender        string
	defaultDomain string
}

func NewMailgunNotifier(conf *config.MailgunConfig) *MailgunNotifier {
	return &MailgunNotifier{
		mg:            mailgun.NewMailgun(conf.Domain, conf.APIKey),
		sender:        conf.Sender,
		defaultDomain: conf.DefaultDomain,
	}
}

func (n *MailgunNotifier) Notify(ctx context.Context, uni, subject, body string) error {
	message := n.mg.NewMessage(n.sender, subject, body, Address(uni, n.defaultDomain))

	if _, _, err := n.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mg.Send -> %w", err)
	}

	return nil
}
