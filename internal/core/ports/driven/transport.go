package driven

import "context"

// Message is a cross-context request: an action name plus parameters.
type Message struct {
	// Action is the name of the remote operation.
	Action string `json:"action"`

	// Params carries string parameters for the operation.
	Params map[string]string `json:"params,omitempty"`
}

// Response is the cross-context reply envelope.
type Response struct {
	// Success reports whether the remote operation succeeded.
	Success bool `json:"success"`

	// Data is the operation result, action-specific.
	Data map[string]any `json:"data,omitempty"`

	// Error is the remote failure description when Success is false.
	Error string `json:"error,omitempty"`
}

// Transport delivers messages to another execution context (the
// browser-side peer). Two call modes, per the dispatch design:
//
//   - Call: request/response. Delivery failures are surfaced to the
//     caller as domain.ErrTransportFailure.
//   - Notify: fire-and-forget. Delivery failures are swallowed by the
//     implementation (logged only); never use Notify for calls whose
//     result the user is waiting on.
type Transport interface {
	// Call sends the message and waits for the peer's response.
	Call(ctx context.Context, msg Message) (*Response, error)

	// Notify sends the message without waiting for a response.
	Notify(ctx context.Context, msg Message) error

	// Close releases the underlying connection.
	Close() error
}
