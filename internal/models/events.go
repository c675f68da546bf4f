package models

type EventKind int

const (
	EventNewMessage EventKind = iota
	EventMessageEdited
)

// MessageRef — идентификатор входящего сообщения.
// message_id в Telegram уникален только в пределах чата, поэтому ключ составной.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// MessageEvent — событие от источника сообщений (новое или отредактированное).
type MessageEvent struct {
	Kind   EventKind
	Ref    MessageRef
	Sender string // username отправителя, lower-case, может быть пустым
	Text   string
}
