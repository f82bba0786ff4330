package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"notes/internal/auth"

	"gopkg.in/yaml.v3"
)

var ErrNoAccount = errors.New("no account to sign in with")

var _ Provider = (*Local)(nil)

// Local is a development identity provider. It mints ID tokens with the same
// signer the API verifies and keeps the session in a YAML file so separate
// processes share it.
type Local struct {
	signer      *auth.JWT
	sessionPath string
	account     string

	mu      sync.Mutex
	current *User
	nextID  int
	subs    map[int]func(*User)
}

type session struct {
	Email      string    `yaml:"email"`
	Token      string    `yaml:"token"`
	SignedInAt time.Time `yaml:"signed_in_at"`
}

// NewLocal restores the session stored at sessionPath, if any. account is
// the email SignIn uses; it may be empty for a provider that only restores
// or ends sessions. An empty sessionPath keeps the session in memory.
func NewLocal(signer *auth.JWT, sessionPath, account string) (*Local, error) {
	l := &Local{
		signer:      signer,
		sessionPath: sessionPath,
		account:     account,
		subs:        map[int]func(*User){},
	}
	if sessionPath == "" {
		return l, nil
	}

	b, err := os.ReadFile(sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s session
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", sessionPath, err)
	}
	// A stale or foreign token counts as signed out.
	if email, err := signer.Verify(s.Token); err == nil {
		l.current = &User{Email: email, Token: s.Token}
	}
	return l, nil
}

func (l *Local) SignIn(ctx context.Context) (*User, error) {
	if l.account == "" {
		return nil, ErrNoAccount
	}
	token, err := l.signer.Sign(l.account)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	email, err := l.signer.Verify(token)
	if err != nil {
		return nil, err
	}
	u := &User{Email: email, Token: token}

	if err := l.save(session{Email: email, Token: token, SignedInAt: time.Now().UTC()}); err != nil {
		return nil, err
	}
	l.set(u)
	return u, nil
}

func (l *Local) SignOut(ctx context.Context) error {
	if l.sessionPath != "" {
		if err := os.Remove(l.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
	}
	l.set(nil)
	return nil
}

// CurrentUser returns the signed-in user or nil.
func (l *Local) CurrentUser() *User {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

func (l *Local) OnAuthStateChanged(fn func(*User)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	current := l.current
	l.mu.Unlock()

	fn(current)

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

func (l *Local) set(u *User) {
	l.mu.Lock()
	l.current = u
	subs := make([]func(*User), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

func (l *Local) save(s session) error {
	if l.sessionPath == "" {
		return nil
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.sessionPath), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(l.sessionPath, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
