package protocol

import "encoding/json"

const (
	TypeRegister       = "register"
	TypePrivateMessage = "private_message"
	TypeGlobalMessage  = "global_message"
	TypeError          = "error"
)

// Frame is the closed union of decoded client frames. Exactly one variant
// comes out of Parse for every byte slice that is valid JSON.
type Frame interface {
	frame()
}

type Register struct {
	UserID string
}

type PrivateMessage struct {
	From    string
	To      string
	Message string
}

type GlobalMessage struct {
	From    string
	Message string
}

// Invalid is a recognized frame type missing a required field. The router
// drops these without an error frame.
type Invalid struct {
	Type    string
	Missing string
}

// Unknown is a frame whose type the protocol does not recognize.
type Unknown struct {
	Type string
}

func (Register) frame()       {}
func (PrivateMessage) frame() {}
func (GlobalMessage) frame()  {}
func (Invalid) frame()        {}
func (Unknown) frame()        {}

type rawFrame struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// Parse decodes one wire frame into its variant. The only error is a
// JSON-level failure; that is the single path that earns the sender an
// error frame.
func Parse(data []byte) (Frame, error) {
	var raw rawFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch raw.Type {
	case TypeRegister:
		if raw.UserID == "" {
			return Invalid{Type: raw.Type, Missing: "userId"}, nil
		}
		return Register{UserID: raw.UserID}, nil

	case TypePrivateMessage:
		if raw.To == "" {
			return Invalid{Type: raw.Type, Missing: "to"}, nil
		}
		if raw.Message == "" {
			return Invalid{Type: raw.Type, Missing: "message"}, nil
		}
		return PrivateMessage{From: raw.From, To: raw.To, Message: raw.Message}, nil

	case TypeGlobalMessage:
		if raw.Message == "" {
			return Invalid{Type: raw.Type, Missing: "message"}, nil
		}
		return GlobalMessage{From: raw.From, Message: raw.Message}, nil

	default:
		return Unknown{Type: raw.Type}, nil
	}
}

// Server-to-client frames.

type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type PresenceFrame struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type PrivateDelivery struct {
	Type string             `json:"type"`
	Data PrivateMessageData `json:"data"`
}

type PrivateMessageData struct {
	ID               int64  `json:"id"`
	SenderUsername   string `json:"sender_username"`
	ReceiverUsername string `json:"receiver_username"`
	Message          string `json:"message"`
	CreatedAt        string `json:"created_at"`
}

type GlobalDelivery struct {
	Type string            `json:"type"`
	Data GlobalMessageData `json:"data"`
}

type GlobalMessageData struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
