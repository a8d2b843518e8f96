package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	// foreign_keys travels in the DSN so every pooled connection enforces
	// cascades, not just the first.
	dsn := "file:domain_models?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (User{}).TableName() != "users" {
		t.Fatalf("User.TableName() = %q; want %q", (User{}).TableName(), "users")
	}
	if (Message{}).TableName() != "messages" {
		t.Fatalf("Message.TableName() = %q; want %q", (Message{}).TableName(), "messages")
	}
	if (MessageRecipient{}).TableName() != "message_recipients" {
		t.Fatalf("MessageRecipient.TableName() = %q; want %q", (MessageRecipient{}).TableName(), "message_recipients")
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&User{}, &Message{}, &MessageRecipient{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&User{}, &Message{}, &MessageRecipient{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	// Indexes from tags exist
	if !m.HasIndex(&User{}, "ux_users_email") {
		t.Fatalf("expected index ux_users_email on users")
	}
	if !m.HasIndex(&Message{}, "idx_messages_sender") {
		t.Fatalf("expected index idx_messages_sender on messages")
	}
	if !m.HasIndex(&MessageRecipient{}, "ux_message_recipient") {
		t.Fatalf("expected index ux_message_recipient on message_recipients")
	}

	// Seed a sender, a recipient, a message, and one delivery row.
	sender := User{ID: "u-sender", Email: "sender@example.com", Name: "Sender", CreatedAt: time.Now().UTC()}
	recip := User{ID: "u-recip", Email: "recip@example.com", Name: "Recipient", CreatedAt: time.Now().UTC()}
	for _, u := range []User{sender, recip} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user %s: %v", u.ID, err)
		}
	}
	msg := Message{ID: "m1", SenderID: sender.ID, Subject: "hi", Content: "hello", Timestamp: time.Now().UTC()}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	mr := MessageRecipient{ID: "mr1", MessageID: msg.ID, RecipientID: recip.ID}
	if err := db.Create(&mr).Error; err != nil {
		t.Fatalf("seed delivery row: %v", err)
	}

	// Unique (message_id, recipient_id): second identical pairing must fail.
	dup := MessageRecipient{ID: "mr2", MessageID: msg.ID, RecipientID: recip.ID}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatalf("expected unique constraint violation for duplicate delivery row")
	}

	// Deleting the sender cascades to the message and its delivery rows.
	if err := db.Delete(&User{}, "id = ?", sender.ID).Error; err != nil {
		t.Fatalf("delete sender: %v", err)
	}
	var msgs, rows int64
	if err := db.Model(&Message{}).Count(&msgs).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if err := db.Model(&MessageRecipient{}).Count(&rows).Error; err != nil {
		t.Fatalf("count delivery rows: %v", err)
	}
	if msgs != 0 || rows != 0 {
		t.Fatalf("cascade failed: messages=%d recipients=%d; want 0/0", msgs, rows)
	}
}

func TestReadStateDefaults(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&User{}, &Message{}, &MessageRecipient{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	u := User{ID: "u1", Email: "a@example.com", Name: "A"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	msg := Message{ID: "m1", SenderID: u.ID, Content: "body"}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	if err := db.Create(&MessageRecipient{ID: "mr1", MessageID: msg.ID, RecipientID: u.ID}).Error; err != nil {
		t.Fatalf("seed delivery row: %v", err)
	}

	var got MessageRecipient
	if err := db.First(&got, "id = ?", "mr1").Error; err != nil {
		t.Fatalf("load delivery row: %v", err)
	}
	if got.Read {
		t.Fatalf("new delivery row should be unread")
	}
	if got.ReadAt != nil {
		t.Fatalf("read_at must be nil while unread, got %v", got.ReadAt)
	}
}
