package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"ofx/internal/adapters/email"
	"ofx/internal/domain/earning"
	"ofx/internal/domain/user"
	"ofx/internal/domain/video"
	"ofx/internal/domain/withdrawal"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// mockUserStore is an in-memory user store keyed by ID.
type mockUserStore struct {
	users     map[string]user.User
	createErr error
}

func newMockUserStore(users ...user.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

// GetByID returns a seeded user.
// PRE: id is non-empty
// POST: Returns the user or user.ErrNotFound
func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

// GetByEmail returns the user with an exactly matching email.
func (m *mockUserStore) GetByEmail(_ context.Context, addr string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == addr {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// Create stores the user, enforcing email uniqueness.
func (m *mockUserStore) Create(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	m.users[u.ID] = u
	return nil
}

// CountAdmins counts seeded admins.
func (m *mockUserStore) CountAdmins(_ context.Context) (int, error) {
	n := 0
	for _, u := range m.users {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

// mustUser builds a user with a hashed password.
func mustUser(id, name, addr, password string, admin bool) user.User {
	u := user.User{ID: id, Name: name, Email: addr, IsAdmin: admin, CreatedAt: fixedTime}
	if err := u.SetPassword(password); err != nil {
		panic(err)
	}
	return u
}

// mockSender records sent messages.
type mockSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
	err  error
}

// Send records req.
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock", SentAt: fixedTime}, nil
}

// mockWithdrawalStore is an in-memory withdrawal store.
type mockWithdrawalStore struct {
	rows map[string]withdrawal.Withdrawal
}

func newMockWithdrawalStore(rows ...withdrawal.Withdrawal) *mockWithdrawalStore {
	m := &mockWithdrawalStore{rows: make(map[string]withdrawal.Withdrawal)}
	for _, w := range rows {
		m.rows[w.ID] = w
	}
	return m
}

// Create stores w.
func (m *mockWithdrawalStore) Create(_ context.Context, w withdrawal.Withdrawal) error {
	m.rows[w.ID] = w
	return nil
}

// GetByID returns a stored withdrawal.
func (m *mockWithdrawalStore) GetByID(_ context.Context, id string) (withdrawal.Withdrawal, error) {
	w, ok := m.rows[id]
	if !ok {
		return withdrawal.Withdrawal{}, withdrawal.ErrNotFound
	}
	return w, nil
}

// SaveDecision mirrors the conditional update of the SQLite store.
func (m *mockWithdrawalStore) SaveDecision(_ context.Context, w withdrawal.Withdrawal) error {
	if m.rows[w.ID].Status != withdrawal.StatusPending {
		return withdrawal.ErrAlreadyDecided
	}
	m.rows[w.ID] = w
	return nil
}

// mockEarningStore records created earnings.
type mockEarningStore struct {
	rows []earning.Earning
}

// Create appends e.
func (m *mockEarningStore) Create(_ context.Context, e earning.Earning) error {
	m.rows = append(m.rows, e)
	return nil
}

// mockVideoStore records created videos.
type mockVideoStore struct {
	rows []video.Video
	err  error
}

// Create appends v unless err is set.
func (m *mockVideoStore) Create(_ context.Context, v video.Video) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, v)
	return nil
}

// mockFileStore keeps uploads in memory.
type mockFileStore struct {
	files map[string][]byte
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{files: make(map[string][]byte)}
}

// Save stores the bytes under /static/uploads/<name>.
func (m *mockFileStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	p := "/static/uploads/" + name
	m.files[p] = buf.Bytes()
	return p, nil
}

// Remove deletes a stored upload.
func (m *mockFileStore) Remove(_ context.Context, p string) error {
	if _, ok := m.files[p]; !ok {
		return errors.New("no such file")
	}
	delete(m.files, p)
	return nil
}
