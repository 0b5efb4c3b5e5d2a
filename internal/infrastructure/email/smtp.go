package email

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	sharedConfig "github.com/bizcompare/bizcompare/internal/shared/config"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// Notifier sends account emails triggered by billing events.
type Notifier interface {
	SendPaymentFailed(to, name string) error
	SendSubscriptionCanceled(to, name string) error
}

// SMTPNotifier sends mail through a plain SMTP relay.
type SMTPNotifier struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
	logger      logger.Interface
}

func NewSMTPNotifier(cfg *sharedConfig.EmailConfig, logger logger.Interface) Notifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &SMTPNotifier{
		dialer:      dialer,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		logger:      logger,
	}
}

func (n *SMTPNotifier) SendPaymentFailed(to, name string) error {
	subject := "Payment failed for your subscription"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We could not process the payment for your subscription renewal. Your plan
stays active while the payment provider retries.</p>
<p>Please update your payment method to avoid losing access to your paid
features.</p>
<p>— The BizCompare team</p>`, htmlName(name))

	return n.send(to, subject, body)
}

func (n *SMTPNotifier) SendSubscriptionCanceled(to, name string) error {
	subject := "Your subscription has been canceled"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your subscription has ended and your account is back on the free plan.
Your saved data is untouched.</p>
<p>You can resubscribe at any time from your account page.</p>
<p>— The BizCompare team</p>`, htmlName(name))

	return n.send(to, subject, body)
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.fromAddress, n.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Errorw("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Infow("email sent", "to", to, "subject", subject)
	return nil
}

func htmlName(name string) string {
	if name == "" {
		return "there"
	}
	return html.EscapeString(name)
}
