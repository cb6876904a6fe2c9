package models

// Transient FSM states stored per chat (waiting for a text reply).
const (
	StateNone       = ""
	StateWaitImport = "wait_import"
	StateWaitCity   = "wait_city"
)
