package console

import (
	"context"
	"errors"

	"github.com/madik/projectdesk/internal/client"
	"github.com/madik/projectdesk/internal/model"
)

var (
	// ErrEditInProgress is returned when entering edit mode on a row
	// while another row is still being edited. The in-progress edit is
	// never silently discarded.
	ErrEditInProgress = errors.New("another row is being edited")
	// ErrRowBusy is returned when acting on a row whose save request is
	// still in flight.
	ErrRowBusy = errors.New("a request is already in flight")
	ErrNoEdit         = errors.New("no row is being edited")
	ErrUnknownProject = errors.New("unknown project id")
)

// API is the slice of the REST client the views depend on.
type API interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, payload model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, id int64, payload model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Notifier surfaces transient user-facing notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Env carries the collaborators every view needs: the API client, the
// session, notification/confirmation surfaces and navigation.
type Env struct {
	API      API
	Session  *Session
	Notify   Notifier
	Confirm  Confirmer
	Navigate func(route string)
}

// authFailure implements the shared reaction to an authorization
// failure: notify, clear the session and redirect to login.
func (e *Env) authFailure() {
	e.Notify.Error("Session expired. Please login again.")
	_ = e.Session.Clear()
	if e.Navigate != nil {
		e.Navigate(RouteLogin)
	}
}

func (e *Env) handleRequestError(err error, genericMsg string) {
	if errors.Is(err, client.ErrUnauthorized) {
		e.authFailure()
		return
	}
	e.Notify.Error(genericMsg)
}
