package notify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
)

type Notifier interface {
	Notify(ctx context.Context, uni, subject, body string) error
}

// New returns a Mailgun notifier when an API key is configured and a log-only notifier otherwise.
func New(conf *config.MailgunConfig) Notifier {
	if conf == nil || conf.APIKey == "" || conf.Domain == "" {
		defaultDomain := ""
		if conf != nil {
			defaultDomain = conf.DefaultDomain
		}

		return NewLogNotifier(defaultDomain)
	}

	return NewMailgunNotifier(conf)
}

// Address turns a uni into a mailbox. Unis that already are addresses are kept.
func Address(uni, defaultDomain string) string {
	if strings.Contains(uni, "@") || defaultDomain == "" {
		return uni
	}

	return uni + "@" + defaultDomain
}

type LogNotifier struct {
	defaultDomain string
}

func NewLogNotifier(defaultDomain string) *LogNotifier {
	return &LogNotifier{
		defaultDomain: defaultDomain,
	}
}

func (n *LogNotifier) Notify(_ context.Context, uni, subject, _ string) error {
	zap.L().Info("notification",
		zap.String("to", Address(uni, n.defaultDomain)),
		zap.String("subject", subject),
	)

	return nil
}
