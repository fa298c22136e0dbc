// Package session holds the session-scoped user state and the order history.
// Authentication is mocked: credentials are validated for presence only and
// nothing is persisted across runs.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// User is the signed-in account. Created on sign-in/sign-up, cleared on
// sign-out.
type User struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// ErrMissingCredentials is returned when a required field is empty.
var ErrMissingCredentials = errors.New("name, email and password are required")

// Session tracks the current user, if any.
type Session struct {
	user *User
}

// New returns a signed-out session.
func New() *Session {
	return &Session{}
}

// SignIn validates credential presence and establishes the user.
func (s *Session) SignIn(email, password string) (User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	name := displayNameFromEmail(email)
	u := User{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  strings.TrimSpace(email),
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", strings.TrimSpace(email)),
	}
	s.user = &u
	return u, nil
}

// SignUp creates an account and signs it in. Same presence-only validation.
func (s *Session) SignUp(name, email, password string) (User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	u := User{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", strings.TrimSpace(email)),
	}
	s.user = &u
	return u, nil
}

// SignOut clears the user.
func (s *Session) SignOut() {
	s.user = nil
}

// User returns the current user and whether one is signed in.
func (s *Session) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// SignedIn reports whether a user is present.
func (s *Session) SignedIn() bool {
	return s.user != nil
}

func displayNameFromEmail(email string) string {
	local := strings.TrimSpace(email)
	if at := strings.IndexByte(local, '@'); at > 0 {
		local = local[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	if local == "" {
		return "Shopper"
	}
	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
