package conversation

// Image is an attachment rendered next to a reply
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Type    string `json:"type"`
}

// MenuButton is a quick-reply shortcut the web UI can render
type MenuButton struct {
	Icon  string `json:"icon"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Reply is what the transport layer sends back to the user
type Reply struct {
	Text         string       `json:"response"`
	Images       []Image      `json:"images"`
	MenuButtons  []MenuButton `json:"menuButtons"`
	Notification bool         `json:"notification"`
}

// MenuAction is the routing decision produced by the menu flow
type MenuAction int

const (
	ActionNone MenuAction = iota
	ActionNewOrder
	ActionOrderHistory
	ActionOrderDetails
	ActionHelp
	ActionInvalid
)

// Result is the outcome of one flow step
type Result struct {
	Text        string
	Images      []Image
	MenuButtons []MenuButton

	Action       MenuAction
	ShowMenu     bool // the router appends the main menu
	Notification bool // an order notification was dispatched
}

func (r Result) reply() Reply {
	return Reply{
		Text:         r.Text,
		Images:       r.Images,
		MenuButtons:  r.MenuButtons,
		Notification: r.Notification,
	}
}
