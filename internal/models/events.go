package models

// MessageAppended is emitted when a message is appended to the
// conversation transcript.
type MessageAppended struct {
	EventType string `json:"eventType"`
	UserID    string `json:"userId"`
	MessageID string `json:"messageId"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// DictationPartial is emitted when an interim recognition result
// updates the tentative zone of the dictation buffer.
type DictationPartial struct {
	EventType string `json:"eventType"`
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// DictationFinal is emitted when finalized segments are merged into
// the committed zone of the dictation buffer.
type DictationFinal struct {
	EventType string `json:"eventType"`
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
	Segments  int    `json:"segments"`
	Timestamp int64  `json:"timestamp"`
}
