package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/config"
	"vendora/pkg/auth"
	"vendora/pkg/logger"
	"vendora/pkg/mail"
	"vendora/pkg/metrics"
	"vendora/pkg/workerpool"
)

// Mailer delivers transactional email through a bounded worker pool so the
// request path never waits on SMTP. When the pool is saturated the message
// is dropped and counted rather than queued unboundedly.
type Mailer struct {
	pool *workerpool.Pool
}

func NewMailer(workers int) *Mailer {
	return &Mailer{pool: workerpool.New(workers)}
}

// SendVerificationEmail issues a short-lived verification token and mails the
// activation link.
func (m *Mailer) SendVerificationEmail(userID primitive.ObjectID, email string) {
	token, err := auth.Issue(auth.PurposeEmailVerify, userID.Hex(), "")
	if err != nil {
		logger.Error("mailer: issue verification token", "error", err)
		metrics.MailDispatched.WithLabelValues("verification", "dropped").Inc()
		return
	}

	link := config.BaseURL() + "/api/auth/authentication/" + token
	body := fmt.Sprintf(`<h2>Please click on given link to activate your account. This link will expire in 20 minutes</h2>
  <p>%s</p>
  `, link)

	m.dispatch("verification", email, "Account Activation Link", body)
}

// SendResetPasswordEmail issues a short-lived reset token and mails the
// password reset link.
func (m *Mailer) SendResetPasswordEmail(userID primitive.ObjectID, email string) {
	token, err := auth.Issue(auth.PurposePasswordReset, userID.Hex(), "")
	if err != nil {
		logger.Error("mailer: issue reset token", "error", err)
		metrics.MailDispatched.WithLabelValues("reset", "dropped").Inc()
		return
	}

	link := config.BaseURL() + "/api/auth/reset-password/" + token
	body := fmt.Sprintf(`<h2>Please click on given link to reset your account password. This link will expire in 20 minutes</h2>
  <p>%s</p>
  `, link)

	m.dispatch("reset", email, "Account Password Reset Link", body)
}

func (m *Mailer) dispatch(kind, to, subject, body string) {
	err := m.pool.Submit(func() {
		if err := mail.To(to).Subject(subject).Body(body).Send(); err != nil {
			logger.Error("mailer: send failed", "kind", kind, "to", to, "error", err)
			metrics.MailDispatched.WithLabelValues(kind, "failed").Inc()
			return
		}
		metrics.MailDispatched.WithLabelValues(kind, "sent").Inc()
	})
	if err != nil {
		logger.Warn("mailer: pool rejected message", "kind", kind, "error", err)
		metrics.MailDispatched.WithLabelValues(kind, "dropped").Inc()
	}
}

// Shutdown waits for in-flight deliveries to finish.
func (m *Mailer) Shutdown() {
	m.pool.Shutdown()
}
