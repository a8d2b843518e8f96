// Resource views.
//
// Resources are read-only snapshots addressed by a messaging:// URI. Each
// maps onto one read operation and returns its result as indented JSON, so
// an agent can fetch state without composing a tool call.
//
// Catalog:
//
//	messaging://users                      all users
//	messaging://users/{user_id}            one user
//	messaging://messages/sent/{user_id}    a user's sent messages
//	messaging://messages/inbox/{user_id}   a user's inbox
//	messaging://messages/unread/{user_id}  a user's unread messages
//	messaging://messages/{message_id}      one message with recipients
package mcp

import (
	"context"
	"encoding/json"
	"strings"
)

const resourceScheme = "messaging://"

// ReadResource resolves uri to a read operation and returns its result as
// an indented JSON snapshot. Unknown schemes or paths yield a
// validation-kind ToolError; operation failures are classified as in Call.
func (s *Server) ReadResource(ctx context.Context, uri string) (string, error) {
	path, found := strings.CutPrefix(strings.TrimSpace(uri), resourceScheme)
	if !found {
		return "", validationError("unsupported resource URI %q", uri)
	}

	v, err := s.resolveResource(ctx, strings.Trim(path, "/"))
	if err != nil {
		return "", classify(err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", &ToolError{Kind: KindInternal, Message: err.Error()}
	}
	return string(out), nil
}

func (s *Server) resolveResource(ctx context.Context, path string) (any, error) {
	parts := strings.Split(path, "/")
	switch {
	case path == "users":
		return s.Call(ctx, "list_users", nil)

	case len(parts) == 2 && parts[0] == "users":
		return s.Call(ctx, "get_user", mustJSON(UserArgs{UserID: parts[1]}))

	case len(parts) == 3 && parts[0] == "messages" && parts[1] == "sent":
		return s.Call(ctx, "get_sent_messages", mustJSON(UserArgs{UserID: parts[2]}))

	case len(parts) == 3 && parts[0] == "messages" && parts[1] == "inbox":
		return s.Call(ctx, "get_inbox", mustJSON(UserArgs{UserID: parts[2]}))

	case len(parts) == 3 && parts[0] == "messages" && parts[1] == "unread":
		return s.Call(ctx, "get_unread_messages", mustJSON(UserArgs{UserID: parts[2]}))

	case len(parts) == 2 && parts[0] == "messages":
		return s.Call(ctx, "get_message_with_recipients", mustJSON(MessageArgs{MessageID: parts[1]}))

	default:
		return nil, validationError("unknown resource path %q", path)
	}
}

// mustJSON marshals a tool argument struct. The argument types contain only
// strings, so marshaling cannot fail.
func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return json.RawMessage(b)
}
