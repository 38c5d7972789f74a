package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/ivan51987/dentista-backend/config"
)

func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", config.AppConfig.EmailUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.EmailUser,
		config.AppConfig.EmailPass,
	)

	return d.DialAndSend(m)
}
