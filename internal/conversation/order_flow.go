package conversation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/session"
)

// Scratch keys used while an order is being collected
const (
	scratchBottleType   = "bottleType"
	scratchQuantity     = "quantity"
	scratchAddress      = "deliveryAddress"
	scratchDeliveryDate = "deliveryDate"
)

const minAddressLength = 10

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	bottleChoices = map[string]string{
		"1": models.Bottle200ml,
		"2": models.Bottle300ml,
		"3": models.Bottle500ml,
	}
)

// orderFlow collects bottle type, quantity, address and delivery date, then
// submits the order after an explicit confirmation
type orderFlow struct {
	sessions *session.Store
	orders   OrderStore
	notify   func(order models.Order, email string)
	now      func() time.Time
}

func (f *orderFlow) handle(ctx context.Context, userID, message string) (Result, error) {
	state, _ := f.sessions.GetState(userID)

	switch State(state) {
	case StateAwaitingBottleType:
		return f.handleBottleType(userID, message), nil
	case StateAwaitingQuantity:
		return f.handleQuantity(userID, message), nil
	case StateAwaitingAddress:
		return f.handleAddress(userID, message), nil
	case StateAwaitingDeliveryDate:
		return f.handleDeliveryDate(userID, message), nil
	case StateAwaitingConfirmation:
		return f.handleConfirmation(ctx, userID, message)
	default:
		return f.start(userID), nil
	}
}

func (f *orderFlow) start(userID string) Result {
	f.sessions.Update(userID, func(sess *session.Session) {
		sess.State = string(StateAwaitingBottleType)
		sess.Scratch = nil
	})
	return Result{Text: bottleOptionsMessage(), Images: bottleImages}
}

func (f *orderFlow) handleBottleType(userID, message string) Result {
	bottleType, ok := bottleChoices[strings.TrimSpace(message)]
	if !ok {
		return Result{Text: msgInvalidBottle}
	}

	f.advance(userID, StateAwaitingQuantity, scratchBottleType, bottleType)
	return Result{Text: bottleSelectedMessage(bottleType)}
}

func (f *orderFlow) handleQuantity(userID, message string) Result {
	input := strings.TrimSpace(message)
	quantity, err := strconv.Atoi(input)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(input, "-") {
		return Result{Text: msgQuantityTooLarge}
	}
	if err != nil || quantity < models.MinOrderQuantity {
		return Result{Text: msgInvalidQuantity}
	}
	if quantity > models.MaxOrderQuantity {
		return Result{Text: msgQuantityTooLarge}
	}

	f.advance(userID, StateAwaitingAddress, scratchQuantity, strconv.Itoa(quantity))
	return Result{Text: quantityAcceptedMessage(quantity)}
}

func (f *orderFlow) handleAddress(userID, message string) Result {
	address := strings.TrimSpace(message)
	if utf8.RuneCountInString(address) < minAddressLength {
		return Result{Text: msgAddressTooShort}
	}

	f.advance(userID, StateAwaitingDeliveryDate, scratchAddress, address)
	return Result{Text: addressAcceptedMessage(f.tomorrow())}
}

func (f *orderFlow) handleDeliveryDate(userID, message string) Result {
	dateStr := strings.TrimSpace(message)
	if !datePattern.MatchString(dateStr) {
		return Result{Text: msgInvalidDateFormat}
	}

	date, err := time.ParseInLocation(models.DeliveryDateLayout, dateStr, f.now().Location())
	if err != nil {
		// e.g. 2025-02-30
		return Result{Text: msgInvalidDateFormat}
	}
	if date.Before(f.tomorrow()) {
		return Result{Text: msgDateTooSoon}
	}

	var sess session.Session
	f.sessions.Update(userID, func(s *session.Session) {
		if s.Scratch == nil {
			s.Scratch = make(map[string]string)
		}
		s.Scratch[scratchDeliveryDate] = dateStr
		s.State = string(StateAwaitingConfirmation)
		sess = *s
	})

	return Result{Text: orderSummaryMessage(
		sess.Scratch[scratchBottleType],
		sess.Scratch[scratchQuantity],
		sess.Scratch[scratchAddress],
		dateStr,
	)}
}

func (f *orderFlow) handleConfirmation(ctx context.Context, userID, message string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "no", "cancel":
		f.sessions.ClearScratch(userID)
		return Result{Text: msgOrderCancelled, ShowMenu: true}, nil
	case "yes", "confirm":
		return f.submit(ctx, userID)
	default:
		return Result{Text: msgConfirmPrompt}, nil
	}
}

func (f *orderFlow) submit(ctx context.Context, userID string) (Result, error) {
	sess, ok := f.sessions.Get(userID)
	// scratch is flow-scoped; it is cleared whatever the outcome
	defer f.sessions.ClearScratch(userID)

	if !ok || !hasOrderFields(sess.Scratch) {
		return Result{Text: msgOrderSessionExpired, ShowMenu: true}, nil
	}

	order, err := f.buildOrder(sess)
	if err != nil {
		return Result{}, err
	}

	created, err := f.orders.Create(ctx, order)
	if err != nil {
		return Result{Text: orderFailedMessage(err), ShowMenu: true}, nil
	}

	if sess.Email != "" && f.notify != nil {
		f.notify(*created, sess.Email)
	}

	return Result{
		Text:         orderPlacedMessage(created, sess.Email),
		ShowMenu:     true,
		Notification: true,
	}, nil
}

func (f *orderFlow) buildOrder(sess session.Session) (*models.Order, error) {
	quantity, err := strconv.Atoi(sess.Scratch[scratchQuantity])
	if err != nil {
		return nil, fmt.Errorf("stored quantity %q is not a number: %w", sess.Scratch[scratchQuantity], err)
	}
	date, err := time.ParseInLocation(models.DeliveryDateLayout, sess.Scratch[scratchDeliveryDate], f.now().Location())
	if err != nil {
		return nil, fmt.Errorf("stored delivery date is invalid: %w", err)
	}

	return &models.Order{
		UserID:                sess.AccountID,
		BottleType:            sess.Scratch[scratchBottleType],
		Quantity:              quantity,
		DeliveryAddress:       sess.Scratch[scratchAddress],
		PreferredDeliveryDate: date,
		OrderStatus:           models.OrderStatusPending,
	}, nil
}

func (f *orderFlow) advance(userID string, next State, key, value string) {
	f.sessions.Update(userID, func(sess *session.Session) {
		if sess.Scratch == nil {
			sess.Scratch = make(map[string]string)
		}
		sess.Scratch[key] = value
		sess.State = string(next)
	})
}

// tomorrow is the earliest accepted delivery day, at midnight local time
func (f *orderFlow) tomorrow() time.Time {
	now := f.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, 1)
}

func hasOrderFields(scratch map[string]string) bool {
	for _, key := range []string{scratchBottleType, scratchQuantity, scratchAddress, scratchDeliveryDate} {
		if scratch[key] == "" {
			return false
		}
	}
	return true
}
