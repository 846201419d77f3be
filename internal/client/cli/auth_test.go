package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/config"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/notify"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/services"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/session"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(io.Writer, string) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// fakeAuth satisfies both the CLI's AuthService and session.Auth.
type fakeAuth struct {
	mu      sync.Mutex
	current *services.Session
	subs    []func(services.Session, bool)

	loginEmail string
	loginPass  []byte
	loginErr   error
	offline    bool

	regErr    error
	logoutErr error
	pingErr   error
	restore   bool
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (services.Session, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return services.Session{}, f.loginErr
	}
	s := services.Session{Email: email, UserID: "u-1", Online: !f.offline}
	f.setCurrent(&s)
	return s, nil
}

func (f *fakeAuth) Register(ctx context.Context, email string, password []byte) (services.Session, error) {
	if f.regErr != nil {
		return services.Session{}, f.regErr
	}
	return f.Login(ctx, email, password)
}

func (f *fakeAuth) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.setCurrent(nil)
	return nil
}

func (f *fakeAuth) Restore(context.Context) (bool, error) { return f.restore, nil }
func (f *fakeAuth) Ping(context.Context) error            { return f.pingErr }
func (f *fakeAuth) Close() error                          { return nil }

func (f *fakeAuth) Current() (services.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return services.Session{}, false
	}
	return *f.current, true
}

func (f *fakeAuth) Authenticated() bool {
	s, ok := f.Current()
	return ok && s.Online
}

func (f *fakeAuth) Subscribe(fn func(services.Session, bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *fakeAuth) Expire(context.Context) {
	f.mu.Lock()
	if f.current != nil {
		f.current.Online = false
	}
	f.mu.Unlock()
}

func (f *fakeAuth) setCurrent(s *services.Session) {
	f.mu.Lock()
	f.current = s
	subs := append([]func(services.Session, bool){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		if s == nil {
			fn(services.Session{}, false)
		} else {
			fn(*s, true)
		}
	}
}

// newTestApp builds an App over a real session backed by a temporary local
// store. The API client is never reached while the session is offline.
func newTestApp(t *testing.T, as *fakeAuth, input string) (*App, *bytes.Buffer) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	out := &bytes.Buffer{}
	s := session.New(session.Config{MediaDir: t.TempDir(), LoadTimeout: time.Second}, session.Deps{
		Auth:     as,
		Local:    client.NewRepositories(db).Local,
		Notifier: &notify.Memory{},
		Logger:   logging.Nop{},
	})
	s.Start(context.Background())
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	return &App{
		config:      &config.Config{RequestTimeout: time.Second},
		authService: as,
		session:     s,
		logger:      logging.Nop{},
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
		mode:        ModeLocal,
	}, out
}

func TestLogin_Online(t *testing.T) {
	as := &fakeAuth{}
	app, out := newTestApp(t, as, "")
	stubInputs(t, "ann@example.com", []byte("secret"))

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, "ann@example.com", as.loginEmail)
	assert.Equal(t, []byte("secret"), as.loginPass)
	assert.Contains(t, out.String(), "Login successful")
	assert.Equal(t, ModeOnline, app.Mode())
}

func TestLogin_OfflineFallback(t *testing.T) {
	as := &fakeAuth{offline: true}
	app, out := newTestApp(t, as, "")
	stubInputs(t, "ann@example.com", []byte("secret"))

	require.NoError(t, app.Login(context.Background()))

	assert.Contains(t, out.String(), "Signed in offline")
	assert.Equal(t, ModeLocal, app.Mode())
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no cached data", services.ErrLocalDataNotAvailable, "no cached credentials"},
		{"bad password", client.ErrUnauthorized, "Wrong email or password"},
		{"other", errors.New("boom"), "Login unsuccessful: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, &fakeAuth{loginErr: tt.err}, "")
			stubInputs(t, "ann@example.com", []byte("secret"))

			err := app.Login(context.Background())
			require.ErrorIs(t, err, tt.err)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRegister(t *testing.T) {
	as := &fakeAuth{}
	app, out := newTestApp(t, as, "")
	stubInputs(t, "bob@example.com", []byte("pw"))

	require.NoError(t, app.Register(context.Background()))
	assert.Contains(t, out.String(), "Success!")

	cur, ok := as.Current()
	require.True(t, ok)
	assert.Equal(t, "bob@example.com", cur.Email)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	as := &fakeAuth{}
	app, out := newTestApp(t, as, "")
	stubInputs(t, "bob@example.com", []byte("pw"))

	calls := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		calls++
		return []byte(fmt.Sprintf("pw%d", calls)), nil
	}

	require.ErrorIs(t, app.Register(context.Background()), errPasswordMismatch)
	assert.Contains(t, out.String(), "Passwords do not match")
	assert.False(t, app.isLoggedIn())
}

func TestRegister_Error(t *testing.T) {
	app, out := newTestApp(t, &fakeAuth{regErr: errors.New("taken")}, "")
	stubInputs(t, "bob@example.com", []byte("pw"))

	require.Error(t, app.Register(context.Background()))
	assert.Contains(t, out.String(), "Registration failed: taken")
}

func TestLogout(t *testing.T) {
	as := &fakeAuth{current: &services.Session{Email: "ann@example.com", Online: true}}
	app, out := newTestApp(t, as, "")
	app.mode = ModeOnline

	require.NoError(t, app.Logout(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out")
	assert.Equal(t, ModeLocal, app.Mode())
}

func TestWhoami(t *testing.T) {
	tests := []struct {
		name string
		cur  *services.Session
		want string
	}{
		{"anonymous", nil, "Not signed in"},
		{"online", &services.Session{Email: "ann@example.com", Online: true}, "ann@example.com (synced with server)"},
		{"offline", &services.Session{Email: "ann@example.com"}, "ann@example.com (offline, local storage)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, &fakeAuth{current: tt.cur}, "")
			require.NoError(t, app.Whoami(context.Background()))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRefreshMode(t *testing.T) {
	as := &fakeAuth{current: &services.Session{Email: "ann@example.com", Online: true}}
	app, _ := newTestApp(t, as, "")

	app.refreshMode(context.Background())
	assert.Equal(t, ModeOnline, app.Mode())

	as.pingErr = errors.New("down")
	app.refreshMode(context.Background())
	assert.Equal(t, ModeOffline, app.Mode())

	as.setCurrent(nil)
	app.refreshMode(context.Background())
	assert.Equal(t, ModeLocal, app.Mode())
}

func TestGetStatus(t *testing.T) {
	as := &fakeAuth{current: &services.Session{Email: "ann@example.com"}}
	app, _ := newTestApp(t, as, "")
	assert.Equal(t, "(ann@example.com local)", app.getStatus())
}
