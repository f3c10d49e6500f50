// Package conversation implements the ordering chat: authentication, the main
// menu, new orders, order history and order details, and the router that
// dispatches each inbound message to the flow owning the user's current state.
package conversation

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/session"
)

const defaultNotificationTimeout = 30 * time.Second

// Options configures a Bot
type Options struct {
	BotName             string
	SupportContact      string
	SupportEmail        string
	NotificationTimeout time.Duration
	Now                 func() time.Time
}

// Bot routes inbound messages to the conversation flows
type Bot struct {
	sessions *session.Store
	locker   *session.Locker
	notifier Notifier

	auth    *authFlow
	menu    *menuFlow
	order   *orderFlow
	history *historyFlow
	details *detailsFlow

	notifyTimeout time.Duration
	inflight      sync.WaitGroup
	closeMu       sync.Mutex
	closed        bool
}

// New wires the flows around a session store and the external collaborators.
// notifier may be nil, in which case no notifications are sent.
func New(sessions *session.Store, auth Authenticator, orders OrderStore, notifier Notifier, opts Options) *Bot {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NotificationTimeout <= 0 {
		opts.NotificationTimeout = defaultNotificationTimeout
	}

	b := &Bot{
		sessions:      sessions,
		locker:        session.NewLocker(),
		notifier:      notifier,
		notifyTimeout: opts.NotificationTimeout,
	}

	b.auth = &authFlow{sessions: sessions, auth: auth, botName: opts.BotName}
	b.menu = &menuFlow{sessions: sessions, supportContact: opts.SupportContact, supportEmail: opts.SupportEmail}
	b.order = &orderFlow{sessions: sessions, orders: orders, notify: b.dispatchNotification, now: opts.Now}
	b.history = &historyFlow{orders: orders}
	b.details = &detailsFlow{orders: orders}

	return b
}

// HandleMessage processes one inbound message. It never fails: internal errors
// are logged and turned into a generic apology.
func (b *Bot) HandleMessage(ctx context.Context, userID, message string) (reply Reply) {
	unlock := b.locker.Lock(userID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic while processing message from %s: %v", userID, r)
			reply = Reply{Text: msgProcessingFailed}
		}
	}()

	result, err := b.route(ctx, userID, message)
	if err != nil {
		log.Printf("❌ Error processing message from %s: %v", userID, err)
		return Reply{Text: msgProcessingFailed}
	}
	return result.reply()
}

func (b *Bot) route(ctx context.Context, userID, message string) (Result, error) {
	// Global escape hatch, valid in every state
	if IsMenuCommand(message) {
		return b.menu.show(userID), nil
	}

	sess, ok := b.sessions.Get(userID)
	if !ok || !sess.Authenticated {
		return b.auth.handle(ctx, userID, message)
	}

	flow := State(sess.State).Flow()
	log.Printf("Routing message from %s to %s flow", userID, flow)

	switch flow {
	case FlowMenu:
		selection := b.menu.handle(userID, message)
		switch selection.Action {
		case ActionNewOrder:
			return b.order.handle(ctx, userID, message)
		case ActionOrderHistory:
			return b.history.handle(ctx, sess), nil
		}
		return selection, nil

	case FlowNewOrder:
		result, err := b.order.handle(ctx, userID, message)
		if err != nil {
			return Result{}, err
		}
		if result.ShowMenu {
			menu := b.menu.show(userID)
			result.Text += "\n\n" + menu.Text
			result.MenuButtons = menu.MenuButtons
		}
		return result, nil

	case FlowOrderDetails:
		return b.details.handle(ctx, sess, message), nil

	default:
		return b.menu.show(userID), nil
	}
}

// dispatchNotification runs the notifier in the background with its own deadline,
// detached from the request so a slow channel never delays the reply
func (b *Bot) dispatchNotification(order models.Order, email string) {
	if b.notifier == nil {
		return
	}

	b.closeMu.Lock()
	if b.closed {
		b.closeMu.Unlock()
		log.Printf("⚠️  Skipping notification for order %s: shutting down", order.ID)
		return
	}
	b.inflight.Add(1)
	b.closeMu.Unlock()

	go func() {
		defer b.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ Panic in order notification for %s: %v", order.ID, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), b.notifyTimeout)
		defer cancel()

		if err := b.notifier.NotifyOrderCreated(ctx, &order, email); err != nil {
			log.Printf("⚠️  Order notification for %s failed: %v", order.ID, err)
		}
	}()
}

// Wait stops accepting new notifications and blocks until in-flight ones
// finish or ctx is done. Replies are unaffected.
func (b *Bot) Wait(ctx context.Context) error {
	b.closeMu.Lock()
	b.closed = true
	b.closeMu.Unlock()

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveSessions returns the number of sessions held in memory
func (b *Bot) ActiveSessions() int {
	return b.sessions.Len()
}
