package domain

// Sender identifies who authored a chat message.
type Sender string

// Chat participants.
const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry in the chat transcript.
// Messages exist only on the client; there is no backing store.
type ChatMessage struct {
	// ID is unique per message so a pending placeholder can be removed later.
	ID string

	// Sender is the message author.
	Sender Sender

	// Content is the message text.
	Content string

	// Sources are the document filenames the bot cited, in order.
	Sources []string

	// Pending marks a placeholder awaiting the bot's answer.
	Pending bool
}

// ChatReply is the chat endpoint's answer to one message.
type ChatReply struct {
	// Response is the generated answer.
	Response string `json:"response"`

	// Sources are the cited document filenames, possibly empty.
	Sources []string `json:"sources,omitempty"`
}

// Transcript is the ordered list of chat messages shown to the user.
// It is not safe for concurrent use; the UI loop owns it.
type Transcript struct {
	messages []ChatMessage
	newID    func() string
}

// NewTranscript creates an empty transcript that assigns message IDs with newID.
func NewTranscript(newID func() string) *Transcript {
	return &Transcript{newID: newID}
}

// AddUser appends a message typed by the user and returns its ID.
func (t *Transcript) AddUser(content string) string {
	return t.add(ChatMessage{Sender: SenderUser, Content: content})
}

// AddBot appends a resolved bot message and returns its ID.
func (t *Transcript) AddBot(content string, sources []string) string {
	return t.add(ChatMessage{Sender: SenderBot, Content: content, Sources: sources})
}

// AddPending appends a bot placeholder shown while an answer is generated.
func (t *Transcript) AddPending(content string) string {
	return t.add(ChatMessage{Sender: SenderBot, Content: content, Pending: true})
}

func (t *Transcript) add(msg ChatMessage) string {
	msg.ID = t.newID()
	t.messages = append(t.messages, msg)
	return msg.ID
}

// Remove deletes the message with the given ID.
// It returns false when no such message exists.
func (t *Transcript) Remove(id string) bool {
	for i := range t.messages {
		if t.messages[i].ID == id {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Messages returns a copy of the messages in display order.
func (t *Transcript) Messages() []ChatMessage {
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// PendingCount returns how many placeholders are awaiting an answer.
func (t *Transcript) PendingCount() int {
	n := 0
	for i := range t.messages {
		if t.messages[i].Pending {
			n++
		}
	}
	return n
}

// Clear removes every message, including pending placeholders.
func (t *Transcript) Clear() {
	t.messages = nil
}
