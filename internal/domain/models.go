// Package domain defines the persistence models for users, messages, and
// per-recipient delivery state. These types are mapped with GORM and form
// the core data layer of the messaging application.
package domain

import "time"

// User is an account that can send and receive messages.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), generated at insert time.
//   - Email: unique contact address, enforced at storage level.
//   - Name: display name, required.
//   - CreatedAt: set once at creation, immutable afterwards.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Message is a single immutable message sent by one user to one or more
// recipients. The recipient fan-out lives in MessageRecipient; a Message row
// never changes after creation.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - SenderID: foreign key to the sending user (indexed, cascade delete).
//   - Subject: optional subject line; empty means no subject.
//   - Content: required message body.
//   - Timestamp: creation time, immutable.
//   - Recipients: per-recipient delivery rows (loaded only on demand).
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	SenderID  string    `json:"sender_id" gorm:"type:char(36);not null;index:idx_messages_sender"`
	Subject   string    `json:"subject,omitempty" gorm:"type:varchar(255)"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp"`

	// Sender is the owning user. Messages are cascade-deleted when the
	// sender is removed.
	Sender User `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Recipients are the delivery rows created alongside this message.
	// Only populated by queries that explicitly preload them.
	Recipients []MessageRecipient `json:"recipients,omitempty" gorm:"foreignKey:MessageID;references:ID"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// MessageRecipient records the delivery of one message to one recipient and
// tracks whether that recipient has read it. Exactly one row exists per
// (message_id, recipient_id) pair, enforced by a composite unique index.
//
// Invariant: ReadAt is non-nil if and only if Read is true.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - MessageID: foreign key to the delivered message (cascade delete).
//   - RecipientID: foreign key to the receiving user (cascade delete).
//   - Read: whether the recipient has read the message (defaults false).
//   - ReadAt: time of the unread→read transition; nil while unread.
type MessageRecipient struct {
	ID          string     `json:"id"           gorm:"type:char(36);primaryKey"`
	MessageID   string     `json:"message_id"   gorm:"type:char(36);not null;index;uniqueIndex:ux_message_recipient,priority:1"`
	RecipientID string     `json:"recipient_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_message_recipient,priority:2"`
	Read        bool       `json:"read"         gorm:"not null;default:false"`
	ReadAt      *time.Time `json:"read_at"`

	// Message is the delivered message. Delivery rows are cascade-deleted
	// when the message is removed.
	Message Message `json:"-" gorm:"foreignKey:MessageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Recipient is the receiving user. Delivery rows are cascade-deleted
	// when the recipient is removed.
	Recipient User `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for MessageRecipient.
func (MessageRecipient) TableName() string { return "message_recipients" }
