package conversation

import (
	"context"
	"log"
	"strings"

	"github.com/amrutdhara/orderbot/internal/session"
)

type detailsFlow struct {
	orders OrderStore
}

// handle looks up one order. Missing and foreign orders get the same reply.
func (f *detailsFlow) handle(ctx context.Context, sess session.Session, message string) Result {
	orderID := strings.TrimSpace(message)
	if orderID == "" {
		return Result{Text: msgEmptyOrderID}
	}

	order, err := f.orders.GetByID(ctx, orderID, sess.AccountID)
	if err != nil {
		log.Printf("Order lookup for %s failed: %v", sess.UserID, err)
		return Result{Text: msgOrderNotFound}
	}

	return Result{Text: orderDetailsMessage(order)}
}
