package session

import (
	"go.uber.org/zap/zapcore"

	"github.com/beanmart/beanmart/pkg/domain"
)

// logSession renders a snapshot for structured logs. The token is reduced
// to a presence flag.
type logSession domain.Session

func (l logSession) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("authenticated", l.IsAuthenticated)
	enc.AddBool("admin", l.IsAdmin)
	enc.AddBool("has_token", l.Token != "")
	if l.User != nil {
		enc.AddString("user_id", l.User.ID)
		enc.AddString("email", l.User.Email)
	}
	return nil
}
