package mail

import (
	"errors"

	"signalflow/conf"

	gomail "github.com/go-mail/mail"
)

// Sender SMTP发送器，可选投递前地址校验
type Sender struct {
	dialer   *gomail.Dialer
	from     string
	verifier *Verifier
}

func NewSender(cfg *conf.EmailConfig) (*Sender, error) {
	if cfg.Host == "" || cfg.Port <= 0 || cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("smtp config is missing")
	}
	from := cfg.Sender
	if from == "" {
		from = cfg.Username
	}
	s := &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
	if cfg.PreCheck {
		s.verifier = NewVerifier(from)
	}
	return s, nil
}

// Send 发送一封多部分邮件，text为纯文本降级内容
func (s *Sender) Send(to, subject, html, text string) error {
	if to == "" {
		return errors.New("recipient is required")
	}
	if s.verifier != nil {
		if err := s.verifier.VerifierEmail(to); err != nil {
			return err
		}
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)
	return s.dialer.DialAndSend(m)
}
