package mailer

import "errors"

var (
	// ErrSendFailed возвращается, когда письмо не удалось отправить
	ErrSendFailed = errors.New("mailer: failed to send email")
)
