// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message
// and MessageRecipient models: message creation, recipient fan-out, the
// sent/inbox/unread views, and read-state transitions.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-messaging-backend/internal/domain"
)

// CreateMessage inserts a new message row. Recipient fan-out is a separate
// step (CreateRecipient) so the service layer can run both inside one
// transaction.
func CreateMessage(ctx context.Context, db *gorm.DB, senderID, subject, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Subject:   subject,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// CreateRecipient inserts one unread delivery row for (messageID, recipientID).
// A duplicate pairing violates ux_message_recipient and surfaces as the
// driver's unique constraint error.
func CreateRecipient(ctx context.Context, db *gorm.DB, messageID, recipientID string) (*domain.MessageRecipient, error) {
	mr := &domain.MessageRecipient{
		ID:          uuid.NewString(),
		MessageID:   messageID,
		RecipientID: recipientID,
		Read:        false,
	}
	if err := db.WithContext(ctx).Create(mr).Error; err != nil {
		return nil, err
	}
	return mr, nil
}

// ListSent returns messages sent by senderID, ordered deterministically
// (Timestamp ASC, ID ASC).
func ListSent(ctx context.Context, db *gorm.DB, senderID string) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("timestamp ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListInbox returns messages delivered to recipientID, regardless of read
// state, joined through message_recipients.
func ListInbox(ctx context.Context, db *gorm.DB, recipientID string) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Joins("JOIN message_recipients mr ON mr.message_id = messages.id").
		Where("mr.recipient_id = ?", recipientID).
		Order("messages.timestamp ASC, messages.id ASC").
		Find(&out).Error
	return out, err
}

// ListUnread is ListInbox filtered to delivery rows still marked unread.
func ListUnread(ctx context.Context, db *gorm.DB, recipientID string) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Joins("JOIN message_recipients mr ON mr.message_id = messages.id").
		Where("mr.recipient_id = ? AND mr.read = ?", recipientID, false).
		Order("messages.timestamp ASC, messages.id ASC").
		Find(&out).Error
	return out, err
}

// GetMessageWithRecipients fetches a message by ID with its delivery rows
// preloaded, or ErrNotFound if the message does not exist.
func GetMessageWithRecipients(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	err := db.WithContext(ctx).
		Preload("Recipients").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetRecipient fetches the delivery row for (messageID, recipientID), or
// ErrNotFound if no such pairing exists.
func GetRecipient(ctx context.Context, db *gorm.DB, messageID, recipientID string) (*domain.MessageRecipient, error) {
	var mr domain.MessageRecipient
	err := db.WithContext(ctx).
		Where("message_id = ? AND recipient_id = ?", messageID, recipientID).
		First(&mr).Error
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

// MarkRecipientRead sets read=true and read_at=at on the delivery row for
// (messageID, recipientID). The update is unconditional: re-marking an
// already-read row simply refreshes read_at. Returns ErrNotFound when no
// row matches the pairing.
func MarkRecipientRead(ctx context.Context, db *gorm.DB, messageID, recipientID string, at time.Time) (*domain.MessageRecipient, error) {
	res := db.WithContext(ctx).
		Model(&domain.MessageRecipient{}).
		Where("message_id = ? AND recipient_id = ?", messageID, recipientID).
		Updates(map[string]any{"read": true, "read_at": at})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetRecipient(ctx, db, messageID, recipientID)
}

// CountMessages uses a raw COUNT so a missing table surfaces as an error.
func CountMessages(ctx context.Context, db *gorm.DB, senderID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM messages WHERE sender_id = ?", senderID).
		Scan(&total).Error
	return total, err
}
