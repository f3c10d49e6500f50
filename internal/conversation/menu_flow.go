package conversation

import (
	"strings"

	"github.com/amrutdhara/orderbot/internal/session"
)

var menuCommands = map[string]bool{
	"menu":      true,
	"main menu": true,
	"home":      true,
}

// IsMenuCommand reports whether message asks to return to the main menu
func IsMenuCommand(message string) bool {
	return menuCommands[strings.ToLower(strings.TrimSpace(message))]
}

type menuFlow struct {
	sessions       *session.Store
	supportContact string
	supportEmail   string
}

// show renders the main menu and parks the session in MAIN_MENU with no scratch data
func (f *menuFlow) show(userID string) Result {
	f.sessions.Update(userID, func(sess *session.Session) {
		sess.State = string(StateMainMenu)
		sess.Scratch = nil
	})
	return Result{Text: mainMenuMessage(), MenuButtons: menuButtons}
}

func (f *menuFlow) handle(userID, message string) Result {
	switch strings.TrimSpace(message) {
	case "1":
		f.sessions.Update(userID, func(sess *session.Session) {
			sess.State = string(StateNewOrderStart)
			sess.Scratch = nil
		})
		return Result{Text: "Starting new order process...", Action: ActionNewOrder}

	case "2":
		return Result{Text: "Fetching your order history...", Action: ActionOrderHistory}

	case "3":
		f.sessions.SetState(userID, string(StateAwaitingOrderID))
		return Result{Text: msgAskOrderID, Action: ActionOrderDetails}

	case "4":
		return Result{Text: helpMessage(f.supportContact, f.supportEmail), Action: ActionHelp}

	default:
		return Result{Text: msgInvalidMenuOption, Action: ActionInvalid}
	}
}
