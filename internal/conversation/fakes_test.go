package conversation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/session"
)

const (
	testUser     = "+919811111111"
	testEmail    = "customer@example.com"
	testPassword = "s3cret-pass"
	testAccount  = "acc-customer"
)

// 2025-06-10 09:30 local
var testNow = time.Date(2025, time.June, 10, 9, 30, 0, 0, time.Local)

type fakeAuth struct {
	calls int
	err   error
}

func (a *fakeAuth) Authenticate(_ context.Context, email, password string) (*Account, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	if email != testEmail || password != testPassword {
		return nil, errors.New("Invalid login credentials")
	}
	return &Account{ID: testAccount, Email: email}, nil
}

type fakeOrders struct {
	mu        sync.Mutex
	orders    []*models.Order
	createErr error
	listErr   error
	seq       int
}

func (s *fakeOrders) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.seq++
	created := *order
	created.ID = fmt.Sprintf("order-%04d-0000-0000-0000-000000000000", s.seq)
	created.CreatedAt = testNow.Add(time.Duration(s.seq) * time.Minute)
	s.orders = append(s.orders, &created)
	return &created, nil
}

func (s *fakeOrders) ListByAccount(_ context.Context, accountID string, limit int) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.Order
	for _, o := range s.orders {
		if o.UserID == accountID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeOrders) GetByID(_ context.Context, orderID, accountID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID && o.UserID == accountID {
			return o, nil
		}
	}
	return nil, errors.New("order not found")
}

func (s *fakeOrders) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []string
	err    error
	block  chan struct{}
	panics bool
}

func (n *fakeNotifier) NotifyOrderCreated(ctx context.Context, order *models.Order, email string) error {
	if n.block != nil {
		select {
		case <-n.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if n.panics {
		panic("notifier exploded")
	}
	n.mu.Lock()
	n.sent = append(n.sent, order.ID+"|"+email)
	n.mu.Unlock()
	return n.err
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type testBot struct {
	*Bot
	sessions *session.Store
	auth     *fakeAuth
	orders   *fakeOrders
	notifier *fakeNotifier
}

func newTestBot() *testBot {
	sessions := session.NewStore(session.Config{Timeout: time.Minute})
	tb := &testBot{
		sessions: sessions,
		auth:     &fakeAuth{},
		orders:   &fakeOrders{},
		notifier: &fakeNotifier{},
	}
	tb.Bot = New(sessions, tb.auth, tb.orders, tb.notifier, Options{
		BotName:             "Amrut-Dhara Water Solutions",
		SupportContact:      "+91-9000000000",
		SupportEmail:        "support@amrutdhara.com",
		NotificationTimeout: time.Second,
		Now:                 func() time.Time { return testNow },
	})
	return tb
}

func (tb *testBot) send(message string) Reply {
	return tb.HandleMessage(context.Background(), testUser, message)
}

func (tb *testBot) state() State {
	st, _ := tb.sessions.GetState(testUser)
	return State(st)
}

// login drives the auth flow and leaves the user at the main menu
func (tb *testBot) login() {
	tb.send("hi")
	tb.send(testEmail)
	tb.send(testPassword)
	tb.send("menu")
}

// fillOrder takes a logged-in user to the confirmation step
func (tb *testBot) fillOrder() {
	tb.send("1")
	tb.send("2")
	tb.send("24")
	tb.send("12 MG Road, Bengaluru 560001")
	tb.send("2025-06-12")
}
