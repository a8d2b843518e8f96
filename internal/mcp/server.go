// Package mcp implements the tool-invocation surface of the messaging
// backend: the same operations the REST API exposes, addressable as
// named tools for programmatic agents, plus read-only resource views keyed
// by messaging:// URIs.
//
// The surface is transport-agnostic: Server.Call takes a tool name and a
// raw JSON argument payload, decodes it into the tool's typed request
// struct, and runs the operation against the injected services. Failures
// come back as *ToolError values carrying a stable kind, so callers can
// translate them into whatever their transport uses (the HTTP bridge maps
// them onto status codes).
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tbourn/go-messaging-backend/internal/domain"
	"github.com/tbourn/go-messaging-backend/internal/services"
)

// ErrorKind classifies a tool failure. The kinds mirror the service error
// taxonomy: validation, not_found, conflict, internal.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// ToolError is the typed failure returned by Server.Call and
// Server.ReadResource.
type ToolError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *ToolError) Error() string { return string(e.Kind) + ": " + e.Message }

// classify wraps a service error in a ToolError with the matching kind.
// A *ToolError passes through unchanged.
func classify(err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	kind := KindInternal
	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrNoRecipients):
		kind = KindValidation
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateDelivery):
		kind = KindConflict
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSenderNotFound),
		errors.Is(err, services.ErrRecipientNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrDeliveryNotFound):
		kind = KindNotFound
	}
	return &ToolError{Kind: kind, Message: err.Error()}
}

// validationError builds a validation-kind ToolError from a format string.
func validationError(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

//
// Service contracts (context-aware, same shapes the HTTP handlers consume)
//

// UserService defines the user operations the tool surface invokes.
type UserService interface {
	Create(ctx context.Context, email, name string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// MessageService defines the messaging operations the tool surface invokes.
type MessageService interface {
	Send(ctx context.Context, senderID, subject, content string, recipientIDs []string) (*domain.Message, error)
	ListSent(ctx context.Context, userID string) ([]domain.Message, error)
	Inbox(ctx context.Context, userID string) ([]domain.Message, error)
	Unread(ctx context.Context, userID string) ([]domain.Message, error)
	GetWithRecipients(ctx context.Context, messageID string) (*domain.Message, error)
	MarkRead(ctx context.Context, messageID, recipientID string) (*domain.MessageRecipient, error)
}

//
// Server
//

// toolFunc runs one tool against decoded arguments.
type toolFunc func(ctx context.Context, args json.RawMessage) (any, error)

type tool struct {
	name        string
	description string
	run         toolFunc
}

// ToolInfo describes one registered tool for discovery.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server dispatches tool calls and resource reads to the messaging services.
// It is safe for concurrent use: the registry is built once in NewServer and
// never mutated afterwards.
type Server struct {
	users    UserService
	messages MessageService
	tools    map[string]tool
}

// NewServer builds a Server with the full tool catalog registered.
func NewServer(users UserService, messages MessageService) *Server {
	s := &Server{
		users:    users,
		messages: messages,
		tools:    make(map[string]tool),
	}
	s.registerUserTools()
	s.registerMessageTools()
	return s
}

// register adds one tool to the catalog.
func (s *Server) register(name, description string, run toolFunc) {
	s.tools[name] = tool{name: name, description: description, run: run}
}

// Tools returns the catalog sorted by name.
func (s *Server) Tools() []ToolInfo {
	out := make([]ToolInfo, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, ToolInfo{Name: t.name, Description: t.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call invokes the named tool with a raw JSON argument payload. A nil or
// empty payload is treated as "{}". Unknown names and undecodable payloads
// yield validation-kind ToolErrors; operation failures are classified from
// the underlying service error.
func (s *Server) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, okName := s.tools[name]
	if !okName {
		return nil, validationError("unknown tool %q", name)
	}
	res, err := t.run(ctx, args)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// decodeArgs strictly decodes args into dst. Unknown fields are rejected so
// a misspelled argument fails loudly instead of silently going unused.
func decodeArgs(args json.RawMessage, dst any) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validationError("invalid arguments: %v", err)
	}
	return nil
}
