package mailer

// Supported provider names for Config.Provider.
const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
	ProviderSES    = "ses"
)

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FromEmail string `env:"MAIL_FROM_EMAIL,required"`
	FromName  string `env:"MAIL_FROM_NAME" envDefault:"Candidatures"`
	Provider  string `env:"MAIL_PROVIDER" envDefault:"resend"`
}

// From returns the formatted sender identity.
func (c Config) From() string {
	return Recipient(c.FromName, c.FromEmail)
}
