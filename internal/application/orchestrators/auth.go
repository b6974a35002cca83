package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"planner/internal/adapters/api"
	"planner/internal/domain/account"
)

// AuthGateway defines the gateway interface for the session flows.
type AuthGateway interface {
	Signup(ctx context.Context, name, email, password string) (account.User, error)
	Login(ctx context.Context, email, password string) (account.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (account.User, error)
}

// AuthDeps holds dependencies for the auth flows.
type AuthDeps struct {
	Gateway AuthGateway
}

// SignupCommand holds registration input.
type SignupCommand struct {
	Name     string
	Email    string
	Password string
}

// ExecuteSignup registers a new user and leaves the session established
// on the gateway's cookie jar.
// PRE: Name, Email, Password pass client-side checks
func ExecuteSignup(ctx context.Context, cmd SignupCommand, deps AuthDeps) (account.User, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return account.User{}, account.ErrEmptyName
	}
	if err := account.ValidateCredentials(cmd.Email, cmd.Password); err != nil {
		return account.User{}, err
	}

	user, err := deps.Gateway.Signup(ctx, strings.TrimSpace(cmd.Name), strings.TrimSpace(cmd.Email), cmd.Password)
	if err != nil {
		slog.Info("auth_event", "event", "signup_failed", "email", cmd.Email, "error", err.Error())
		return account.User{}, fmt.Errorf("signup: %w", err)
	}
	slog.Info("auth_event", "event", "signup_success", "email", user.Email)
	return user, nil
}

// LoginCommand holds login input.
type LoginCommand struct {
	Email    string
	Password string
}

// ExecuteLogin authenticates against the backend.
func ExecuteLogin(ctx context.Context, cmd LoginCommand, deps AuthDeps) (account.User, error) {
	if err := account.ValidateCredentials(cmd.Email, cmd.Password); err != nil {
		return account.User{}, err
	}

	user, err := deps.Gateway.Login(ctx, strings.TrimSpace(cmd.Email), cmd.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", cmd.Email, "error", err.Error())
		return account.User{}, fmt.Errorf("login: %w", err)
	}
	slog.Info("auth_event", "event", "login_success", "email", user.Email)
	return user, nil
}

// ExecuteLogout ends the session.
func ExecuteLogout(ctx context.Context, deps AuthDeps) error {
	if err := deps.Gateway.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}

// WhoAmIResult carries the session user, or LoggedIn=false when there is
// no session. Being logged out is a normal outcome, never an error.
type WhoAmIResult struct {
	LoggedIn bool
	User     account.User
}

// QueryWhoAmI returns the current session identity.
func QueryWhoAmI(ctx context.Context, deps AuthDeps) (WhoAmIResult, error) {
	user, err := deps.Gateway.Me(ctx)
	if errors.Is(err, api.ErrNotLoggedIn) {
		return WhoAmIResult{}, nil
	}
	if err != nil {
		return WhoAmIResult{}, fmt.Errorf("current user: %w", err)
	}
	return WhoAmIResult{LoggedIn: true, User: user}, nil
}
