package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/amrutdhara/orderbot/internal/session"
)

const scratchEmail = "email"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authFlow collects and verifies credentials: INIT -> AWAITING_EMAIL -> AWAITING_PASSWORD -> AUTHENTICATED
type authFlow struct {
	sessions *session.Store
	auth     Authenticator
	botName  string
}

func (f *authFlow) handle(ctx context.Context, userID, message string) (Result, error) {
	state, _ := f.sessions.GetState(userID)

	switch State(state) {
	case StateAwaitingEmail:
		return f.handleEmail(userID, message), nil
	case StateAwaitingPassword:
		return f.handlePassword(ctx, userID, message), nil
	default:
		return f.start(userID), nil
	}
}

// start ignores the triggering message and asks for the email
func (f *authFlow) start(userID string) Result {
	f.sessions.Update(userID, func(sess *session.Session) {
		sess.State = string(StateAwaitingEmail)
		sess.Scratch = nil
	})
	return Result{Text: welcomeMessage(f.botName)}
}

func (f *authFlow) handleEmail(userID, message string) Result {
	email := strings.TrimSpace(message)
	if !emailPattern.MatchString(email) {
		return Result{Text: msgInvalidEmail}
	}

	f.sessions.Update(userID, func(sess *session.Session) {
		sess.Scratch = map[string]string{scratchEmail: email}
		sess.State = string(StateAwaitingPassword)
	})
	return Result{Text: msgAskPassword}
}

// handlePassword never logs or stores the password; it only lives for the Authenticate call
func (f *authFlow) handlePassword(ctx context.Context, userID, password string) Result {
	email, ok := f.sessions.GetScratch(userID, scratchEmail)
	if !ok {
		f.sessions.SetState(userID, string(StateInit))
		return Result{Text: msgSessionExpired}
	}

	account, err := f.auth.Authenticate(ctx, email, password)
	if err != nil {
		f.sessions.Update(userID, func(sess *session.Session) {
			sess.Scratch = nil
			sess.State = string(StateInit)
		})
		return Result{Text: authFailedMessage(err)}
	}

	f.sessions.Update(userID, func(sess *session.Session) {
		sess.AccountID = account.ID
		sess.Email = account.Email
		sess.Authenticated = true
		sess.State = string(StateAuthenticated)
		sess.Scratch = nil
	})

	return Result{Text: authSuccessMessage(email)}
}
