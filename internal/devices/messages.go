package devices

import "github.com/loghoi/loghoi/internal/backend"

// devicesLoadedMsg carries the result of one list fetch.
type devicesLoadedMsg struct {
	id      int
	devices []backend.Device
	err     error
}

// registerResultMsg carries the result of one registration attempt.
type registerResultMsg struct {
	reg backend.Registration
	err error
}

// RegisteredMsg is emitted after the backend accepted a registration. The
// list panel refreshes when it sees one.
type RegisteredMsg struct {
	Address string
}
