package conversation

import (
	"context"

	"github.com/amrutdhara/orderbot/internal/session"
)

const historyLimit = 10

type historyFlow struct {
	orders OrderStore
}

func (f *historyFlow) handle(ctx context.Context, sess session.Session) Result {
	orders, err := f.orders.ListByAccount(ctx, sess.AccountID, historyLimit)
	if err != nil {
		return Result{Text: historyFailedMessage(err)}
	}
	if len(orders) == 0 {
		return Result{Text: msgNoOrders}
	}
	if len(orders) > historyLimit {
		orders = orders[:historyLimit]
	}
	return Result{Text: orderHistoryMessage(orders)}
}
