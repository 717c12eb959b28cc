// Package pages holds the controllers behind each screen of the assistant:
// sign-in, résumé upload and chat, knowledge-base management, query history
// and the profile. Controllers validate input locally, call the backend
// through the API client and return views rendered from fixed templates.
// They know nothing about the terminal; navigation is reported through a
// Navigator.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/session"
)

// Page names a screen a controller can send the user to.
type Page string

const (
	PageHome      Page = "index.html"
	PageLogin     Page = "auth.html"
	PageKnowledge Page = "knowledge.html"
	PageKBDetail  Page = "kb-detail.html"
	PageHistory   Page = "history.html"
	PageProfile   Page = "profile.html"
)

// Fixed delays before a navigation takes effect.
const (
	LoginRedirectDelay    = 1000 * time.Millisecond
	RegisterRedirectDelay = 1500 * time.Millisecond
	ExpiredRedirectDelay  = 1500 * time.Millisecond
)

// Navigation is a request to move to another page after a delay.
type Navigation struct {
	Page  Page
	After time.Duration
	// Username is prefilled on the login form.
	Username string
	// KnowledgeBaseID selects the base on detail and history pages.
	KnowledgeBaseID int64
}

// Navigator carries out navigation requests. Implementations decide
// whether to block for the delay.
type Navigator interface {
	Navigate(ctx context.Context, nav Navigation)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, nav Navigation)

func (f NavigatorFunc) Navigate(ctx context.Context, nav Navigation) { f(ctx, nav) }

// ErrLoginRequired is returned when an action needs a session and there is none.
var ErrLoginRequired = errors.New("请先登录")

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("已取消")

const msgExpired = "认证已过期，请重新登录"

// ValidationError is a problem with user input found before any request
// was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Failure is a request that reached the backend, or tried to, and did not
// succeed. Message is what the user sees.
type Failure struct {
	Message string
	Err     error
}

func (e *Failure) Error() string { return e.Message }

func (e *Failure) Unwrap() error { return e.Err }

// Result is the outcome of a successful action.
type Result struct {
	// Status is the success line, if the page shows one.
	Status string
	// Warnings are secondary failures that did not fail the action.
	Warnings []string
	// View is the rendered page content.
	View string
}

// Deps are the collaborators shared by every controller.
type Deps struct {
	API      *api.Client
	Sessions *session.Store
	Nav      Navigator
	// Logger receives diagnostics that are not shown to the user. Nil
	// means the standard logger.
	Logger *log.Logger
}

type base struct {
	Deps
}

func (b *base) logf(format string, args ...any) {
	if b.Logger != nil {
		b.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (b *base) navigate(ctx context.Context, nav Navigation) {
	if b.Nav != nil {
		b.Nav.Navigate(ctx, nav)
	}
}

// requireSession returns the current session, sending the user to the
// login page when there is none.
func (b *base) requireSession(ctx context.Context) (session.Session, error) {
	s, err := b.Sessions.Current(ctx)
	if err != nil {
		return session.Session{}, fmt.Errorf("reading session: %w", err)
	}
	if !s.Valid() {
		b.navigate(ctx, Navigation{Page: PageLogin})
		return session.Session{}, ErrLoginRequired
	}
	return s, nil
}

// requireToken checks only for a token, as the upload and chat page does.
func (b *base) requireToken(ctx context.Context) error {
	token, err := b.Sessions.Token(ctx)
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if token == "" {
		return ErrLoginRequired
	}
	return nil
}

// expired handles a 401: the session is cleared and the user is sent to
// the login page after ExpiredRedirectDelay. It returns nil for any other
// error.
func (b *base) expired(ctx context.Context, err error) error {
	if !errors.Is(err, api.ErrUnauthorized) {
		return nil
	}
	if lerr := b.Sessions.Logout(ctx); lerr != nil {
		b.logf("pages: clearing expired session: %v", lerr)
	}
	b.navigate(ctx, Navigation{Page: PageLogin, After: ExpiredRedirectDelay})
	return &Failure{Message: msgExpired, Err: err}
}

// fail wraps err with the message shown to the user.
func fail(err error, msg string) error {
	return &Failure{Message: msg, Err: err}
}

// detail returns the server's detail text for err, or fallback.
func detail(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// serverMessage returns the server's detail, or the status text when the
// body carried none.
func serverMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// transportCause returns the underlying cause of a transport failure.
func transportCause(err error) (string, bool) {
	var te *api.TransportError
	if !errors.As(err, &te) {
		return "", false
	}
	return te.Err.Error(), true
}

// prefixed renders the common "<prefix>: <detail or cause>" failure.
func prefixed(err error, prefix string) error {
	return fail(err, prefix+": "+errorText(err))
}

// ParseID parses a knowledge-base id taken from user input.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(msgInvalidID)
	}
	return id, nil
}

func checkID(id int64) error {
	if id <= 0 {
		return invalid(msgInvalidID)
	}
	return nil
}

const msgInvalidID = "无效的知识库ID"
