// Tool registrations.
//
// Each tool owns a typed request struct decoded strictly from the caller's
// JSON arguments; validation beyond shape (identifier format, email rules,
// existence) is the service layer's job, so both surfaces enforce the same
// rules. Tool results are the same domain records the REST API serializes.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/tbourn/go-messaging-backend/internal/domain"
)

//
// Typed requests
//

// CreateUserArgs are the arguments for create_user.
type CreateUserArgs struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserArgs address a single user by identifier.
type UserArgs struct {
	UserID string `json:"user_id"`
}

// SendMessageArgs are the arguments for send_message.
type SendMessageArgs struct {
	SenderID     string   `json:"sender_id"`
	RecipientIDs []string `json:"recipient_ids"`
	Subject      string   `json:"subject"`
	Content      string   `json:"content"`
}

// MessageArgs address a single message by identifier.
type MessageArgs struct {
	MessageID string `json:"message_id"`
}

// MarkReadArgs address one delivery row by its (message, recipient) pairing.
type MarkReadArgs struct {
	MessageID   string `json:"message_id"`
	RecipientID string `json:"recipient_id"`
}

//
// Status payloads
//

// MarkReadResult confirms a mark_message_as_read call.
type MarkReadResult struct {
	Status string `json:"status"`
}

// DeleteAllResult confirms a delete_all_users call.
type DeleteAllResult struct {
	Detail  string `json:"detail"`
	Deleted int64  `json:"deleted"`
}

func (s *Server) registerUserTools() {
	s.register("create_user", "Create a new user",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a CreateUserArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return s.users.Create(ctx, a.Email, a.Name)
		})

	s.register("list_users", "List all users",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			list, err := s.users.List(ctx)
			if err != nil {
				return nil, err
			}
			if list == nil {
				list = []domain.User{}
			}
			return list, nil
		})

	s.register("get_user", "Retrieve user information",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a UserArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return s.users.Get(ctx, a.UserID)
		})

	s.register("delete_all_users", "Delete all users",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			n, err := s.users.DeleteAll(ctx)
			if err != nil {
				return nil, err
			}
			return DeleteAllResult{Detail: "All users deleted", Deleted: n}, nil
		})
}

func (s *Server) registerMessageTools() {
	s.register("send_message", "Send a message to one or more recipients",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a SendMessageArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return s.messages.Send(ctx, a.SenderID, a.Subject, a.Content, a.RecipientIDs)
		})

	s.register("get_sent_messages", "Get messages sent by a user",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a UserArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return emptyIfNil(s.messages.ListSent(ctx, a.UserID))
		})

	s.register("get_inbox", "View a user's inbox",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a UserArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return emptyIfNil(s.messages.Inbox(ctx, a.UserID))
		})

	s.register("get_unread_messages", "View a user's unread messages",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a UserArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return emptyIfNil(s.messages.Unread(ctx, a.UserID))
		})

	s.register("get_message_with_recipients", "View a message with all its recipients",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a MessageArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			m, err := s.messages.GetWithRecipients(ctx, a.MessageID)
			if err != nil {
				return nil, err
			}
			if m.Recipients == nil {
				m.Recipients = []domain.MessageRecipient{}
			}
			return m, nil
		})

	s.register("mark_message_as_read", "Mark a message as read for a recipient",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var a MarkReadArgs
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			if _, err := s.messages.MarkRead(ctx, a.MessageID, a.RecipientID); err != nil {
				return nil, err
			}
			return MarkReadResult{Status: "marked as read"}, nil
		})
}

// emptyIfNil normalizes a nil message slice into an empty one so tool
// results always serialize as JSON arrays.
func emptyIfNil(msgs []domain.Message, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}
