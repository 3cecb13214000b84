package utils

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vinisman/ghctl/internal/github"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Success renders a confirmation line.
func Success(format string, args ...any) string {
	return successStyle.Render(fmt.Sprintf(format, args...))
}

// Failure renders an error line.
func Failure(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

// OpError is a failed operation on one repository, reported to the user.
type OpError struct {
	Verb   string
	Target string
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Verb, e.Target, Describe(e.Err))
}

func (e *OpError) Unwrap() error { return e.Err }

// Describe turns a client error into a short message. Rejections are named by
// their status class, other HTTP codes by number.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		validation *github.ValidationError
		rejected   *github.RejectedError
		network    *github.NetworkError
		decode     *github.DecodeError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Reason
	case errors.As(err, &rejected):
		if rejected.Status == github.StatusOtherRejected {
			return fmt.Sprintf("error %d", rejected.StatusCode)
		}
		return rejected.Status.String()
	case errors.As(err, &network):
		return "network error: " + network.Err.Error()
	case errors.As(err, &decode):
		return "unexpected response: " + decode.Err.Error()
	default:
		return err.Error()
	}
}
