// Message HTTP handlers.
//
// This file exposes REST endpoints for messages and per-recipient read state:
//   - POST /messages                          (send with recipient fan-out)
//   - GET  /messages/{id}                     (detail with delivery rows)
//   - POST /messages/{id}/read/{recipient}    (mark read)
//   - GET  /users/{id}/sent | inbox | unread  (derived views)
//
// The views hang off /users/{id} so the router stays free of wildcard
// conflicts between static segments and /messages/:id.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-messaging-backend/internal/domain"
)

//
// DTOs
//

// SendMessageRequest is the JSON payload for sending a message to one or
// more recipients.
type SendMessageRequest struct {
	// SenderID identifies the sending user.
	SenderID string `json:"sender_id" binding:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Subject is the optional subject line.
	Subject string `json:"subject" example:"Quarterly update"`
	// Content is the required message body.
	Content string `json:"content" binding:"required" example:"Hello there"`
	// RecipientIDs lists the receiving users; order is preserved and
	// duplicates are rejected by the storage layer.
	RecipientIDs []string `json:"recipient_ids" binding:"required"`
}

// MarkReadResponse confirms a mark-read operation.
type MarkReadResponse struct {
	Status string `json:"status" example:"marked as read"`
}

//
// Handlers
//

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message to one or more recipients
// @Description Creates the message and one unread delivery row per recipient, atomically.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SendMessageRequest  true  "Send payload"
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid body, ids, or empty recipients"
// @Failure     404  {object}  handlers.ErrorResponse  "Sender or recipient missing"
// @Failure     409  {object}  handlers.ErrorResponse  "Recipient listed twice"
// @Router      /messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	msg, err := h.msgSvc.Send(c.Request.Context(), req.SenderID, req.Subject, req.Content, req.RecipientIDs)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, msg)
}

// listView writes a message slice, normalizing nil to an empty array.
func listView(c *gin.Context, msgs []domain.Message, err error) {
	if err != nil {
		failErr(c, err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	ok(c, http.StatusOK, msgs)
}

// SentMessages godoc
// @ID          sentMessages
// @Summary     Messages sent by a user
// @Tags        Messages
// @Produce     json
// @Param       id  path  string  true  "User ID (UUID)"
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown user"
// @Router      /users/{id}/sent [get]
func (h *Handlers) SentMessages(c *gin.Context) {
	msgs, err := h.msgSvc.ListSent(c.Request.Context(), c.Param("id"))
	listView(c, msgs, err)
}

// Inbox godoc
// @ID          inbox
// @Summary     Messages delivered to a user
// @Tags        Messages
// @Produce     json
// @Param       id  path  string  true  "User ID (UUID)"
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /users/{id}/inbox [get]
func (h *Handlers) Inbox(c *gin.Context) {
	msgs, err := h.msgSvc.Inbox(c.Request.Context(), c.Param("id"))
	listView(c, msgs, err)
}

// UnreadMessages godoc
// @ID          unreadMessages
// @Summary     Delivered messages the user has not read
// @Tags        Messages
// @Produce     json
// @Param       id  path  string  true  "User ID (UUID)"
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /users/{id}/unread [get]
func (h *Handlers) UnreadMessages(c *gin.Context) {
	msgs, err := h.msgSvc.Unread(c.Request.Context(), c.Param("id"))
	listView(c, msgs, err)
}

// MessageDetail godoc
// @ID          messageDetail
// @Summary     A message with its full recipient fan-out
// @Tags        Messages
// @Produce     json
// @Param       id  path  string  true  "Message ID (UUID)"
// @Success     200  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /messages/{id} [get]
func (h *Handlers) MessageDetail(c *gin.Context) {
	msg, err := h.msgSvc.GetWithRecipients(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	if msg.Recipients == nil {
		msg.Recipients = []domain.MessageRecipient{}
	}
	ok(c, http.StatusOK, msg)
}

// MarkRead godoc
// @ID          markRead
// @Summary     Mark a message read for one recipient
// @Description Sets read=true and refreshes read_at, even if already read.
// @Tags        Messages
// @Produce     json
// @Param       id         path  string  true  "Message ID (UUID)"
// @Param       recipient  path  string  true  "Recipient ID (UUID)"
// @Success     200  {object}  handlers.MarkReadResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "No delivery row for the pairing"
// @Router      /messages/{id}/read/{recipient} [post]
func (h *Handlers) MarkRead(c *gin.Context) {
	_, err := h.msgSvc.MarkRead(c.Request.Context(), c.Param("id"), c.Param("recipient"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, MarkReadResponse{Status: "marked as read"})
}
