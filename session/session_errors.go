package session

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"github.com/tanalabs/tanacoin-client/backend"
)

var (
	ErrNotAuthenticated   = stderrors.New("not authenticated")
	ErrUnsupportedPayment = stderrors.New("payment method not supported by the wallet gateway")
)

// ErrorMessage reduces any error crossing the controller boundary to the
// human-readable string the view layer displays. Backend failures show
// the backend's own message; everything else shows the root cause.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var backendErr *backend.Error
	if stderrors.As(err, &backendErr) {
		return backendErr.Message
	}
	return errors.Cause(err).Error()
}
