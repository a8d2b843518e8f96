// Package services – MessageService
//
// This file implements MessageService, the application-level component that
// owns message sending and the derived views over delivery state. Sending
// validates the sender and every recipient and creates the message row plus
// its per-recipient fan-out inside one transaction: if any recipient is
// missing, nothing persists.
//
// Observability: Send and MarkRead are OpenTelemetry-instrumented; spans
// include sender/recipient identifiers and fan-out size.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-messaging-backend/internal/domain"
	"github.com/tbourn/go-messaging-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MessageService coordinates message persistence, recipient fan-out, and
// read-state transitions.
type MessageService struct {
	// DB is the GORM handle used for all message operations.
	DB *gorm.DB
}

// NewMessageService returns a MessageService bound to db.
func NewMessageService(db *gorm.DB) *MessageService { return &MessageService{DB: db} }

// Send validates the request and persists the message together with one
// unread delivery row per recipient, atomically.
//
// Validation:
//   - content is required (ErrMissingField); subject is optional.
//   - senderID and every recipient ID must be well-formed UUIDs (ErrInvalidID).
//   - recipientIDs must be non-empty (ErrNoRecipients).
//   - the sender must exist (ErrSenderNotFound).
//   - every recipient must exist; the first missing one is reported,
//     wrapped around ErrRecipientNotFound with its identifier.
//   - a recipient listed twice violates the (message, recipient) unique
//     index and yields ErrDuplicateDelivery.
//
// Atomicity: the existence checks, the message insert, and the whole fan-out
// run inside a single transaction. Any failure rolls the lot back; partial
// fan-out never persists.
func (s *MessageService) Send(ctx context.Context, senderID, subject, content string, recipientIDs []string) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(
			attribute.String("sender.id", senderID),
			attribute.Int("recipients.count", len(recipientIDs)),
		),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content", ErrMissingField)
	}
	sid, err := parseID(senderID)
	if err != nil {
		return nil, err
	}
	if len(recipientIDs) == 0 {
		return nil, ErrNoRecipients
	}
	rids := make([]string, 0, len(recipientIDs))
	for _, raw := range recipientIDs {
		rid, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		rids = append(rids, rid)
	}

	var msg *domain.Message
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetUser(ctx, tx, sid); err != nil {
			if isNotFound(err) {
				return ErrSenderNotFound
			}
			return err
		}

		m, err := repo.CreateMessage(ctx, tx, sid, strings.TrimSpace(subject), content)
		if err != nil {
			return err
		}

		for _, rid := range rids {
			if _, err := repo.GetUser(ctx, tx, rid); err != nil {
				if isNotFound(err) {
					return fmt.Errorf("%w: %s", ErrRecipientNotFound, rid)
				}
				return err
			}
			if _, err := repo.CreateRecipient(ctx, tx, m.ID, rid); err != nil {
				if isDuplicate(err) {
					return fmt.Errorf("%w: %s", ErrDuplicateDelivery, rid)
				}
				return err
			}
		}

		msg = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListSent returns all messages sent by userID. The user must exist
// (ErrUserNotFound), keeping the policy consistent with the other lookups.
func (s *MessageService) ListSent(ctx context.Context, userID string) ([]domain.Message, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := repo.GetUser(ctx, s.DB, uid); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.ListSent(ctx, s.DB, uid)
}

// Inbox returns all messages delivered to userID, read or not. An unknown
// user simply has an empty inbox.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]domain.Message, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	return repo.ListInbox(ctx, s.DB, uid)
}

// Unread returns the inbox filtered to messages userID has not read yet.
func (s *MessageService) Unread(ctx context.Context, userID string) ([]domain.Message, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	return repo.ListUnread(ctx, s.DB, uid)
}

// GetWithRecipients fetches a message and its full delivery fan-out.
// Missing messages yield ErrMessageNotFound.
func (s *MessageService) GetWithRecipients(ctx context.Context, messageID string) (*domain.Message, error) {
	mid, err := parseID(messageID)
	if err != nil {
		return nil, err
	}
	m, err := repo.GetMessageWithRecipients(ctx, s.DB, mid)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

// MarkRead marks the (messageID, recipientID) delivery row as read, setting
// read_at to the current time. Re-marking an already-read row refreshes
// read_at; there is no error and no no-op guard. A missing pairing yields
// ErrDeliveryNotFound.
func (s *MessageService) MarkRead(ctx context.Context, messageID, recipientID string) (*domain.MessageRecipient, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "MarkRead",
		trace.WithAttributes(
			attribute.String("message.id", messageID),
			attribute.String("recipient.id", recipientID),
		),
	)
	defer span.End()

	mid, err := parseID(messageID)
	if err != nil {
		return nil, err
	}
	rid, err := parseID(recipientID)
	if err != nil {
		return nil, err
	}

	mr, err := repo.MarkRecipientRead(ctx, s.DB, mid, rid, time.Now().UTC())
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return mr, nil
}
