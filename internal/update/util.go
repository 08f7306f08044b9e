package update

import (
	"errors"

	"github.com/sandeepkv93/tasksync/internal/model"
)

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: errorText(err), IsError: true}
}

// errorText prefers the user-facing message of a validation failure.
func errorText(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
