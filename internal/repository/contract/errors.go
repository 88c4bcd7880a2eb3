package contract

import "errors"

// ErrConversationExists signals that the (property, guest address) unique
// index rejected an insert. The losing writer retries as a lookup.
var ErrConversationExists = errors.New("conversation already exists for property and guest address")
