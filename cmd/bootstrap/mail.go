package bootstrap

import (
	"exechire/internal/infra/mail"
	"exechire/internal/pkg/config"

	"go.uber.org/fx"
)

var MailModule = fx.Module("mail",
	fx.Provide(
		NewMailer,
	),
)

func NewMailer(cfg config.Config) mail.Mailer {
	return mail.NewResendMailer(cfg.Mail)
}
