package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mdmuzammil18/invoice-app/internal/auth"
)

const opTimeout = 5 * time.Second

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoginSuccessMsg is emitted by the login view once the session is stored.
type LoginSuccessMsg struct{}

// SessionChangedMsg is delivered when the session state was re-derived
// after a storage change in another context.
type SessionChangedMsg struct {
	State auth.State
}

// OpCtx returns a context with the standard timeout for store operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
