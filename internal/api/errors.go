package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

// ErrUnreachable means no HTTP response was received at all.
var ErrUnreachable = errors.New("solver unreachable")

// StatusError is a non-2xx response from the solver.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Server responded with status: %d", e.StatusCode)
}

func classify(err error, baseURL string) error {
	var httpErr *ghAPI.HTTPError
	if errors.As(err, &httpErr) {
		return &StatusError{StatusCode: httpErr.StatusCode, Message: httpErr.Message}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return fmt.Errorf("%w at %s: %v", ErrUnreachable, baseURL, err)
	}
	return err
}

// FailureHeading prefixes every explained request failure.
const FailureHeading = "Failed to schedule jobs:"

// Explain turns a request error into the text shown in the results pane.
// Transport failures get a longer explanation with things to check.
func Explain(err error, baseURL string) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	var detail string
	switch {
	case errors.As(err, &statusErr):
		detail = statusErr.Error()
		if statusErr.Message != "" {
			detail += "\n" + statusErr.Message
		}
	case errors.Is(err, ErrUnreachable):
		detail = strings.Join([]string{
			"Unable to connect to the server at " + baseURL + ". Please ensure that:",
			"  - The solver server is running and listening on that address",
			"  - Its dependencies are installed and it started without errors",
			"  - There are no firewall issues blocking the connection",
			"",
			"Point solver.url in the config file or SCHEDVIZ_SOLVER_URL at the right address.",
		}, "\n")
	case errors.Is(err, context.DeadlineExceeded):
		detail = "The scheduling server did not answer in time."
	default:
		detail = err.Error()
	}
	return FailureHeading + "\n" + detail
}
