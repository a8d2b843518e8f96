// User HTTP handlers.
//
// This file exposes REST endpoints for user resources:
//   - POST   /users        (create)
//   - GET    /users        (list)
//   - GET    /users/{id}   (fetch one)
//   - DELETE /users        (delete all, cascades to messages)
//
// Handlers are transport-thin: they validate input shapes, call application
// services, and translate results into HTTP responses. All business rules
// (email validation, uniqueness, identifier parsing) live in the service
// layer so the tool surface behaves identically.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-messaging-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// UserService defines user lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type UserService interface {
	// Create registers a new user with the given email and name.
	Create(ctx context.Context, email, name string) (*domain.User, error)
	// Get fetches a user by identifier.
	Get(ctx context.Context, id string) (*domain.User, error)
	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)
	// DeleteAll removes every user and, via cascade, every message.
	DeleteAll(ctx context.Context) (int64, error)
}

// MessageService defines messaging operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MessageService interface {
	// Send fans a message out to one or more recipients atomically.
	Send(ctx context.Context, senderID, subject, content string, recipientIDs []string) (*domain.Message, error)
	// ListSent returns messages sent by the user.
	ListSent(ctx context.Context, userID string) ([]domain.Message, error)
	// Inbox returns messages delivered to the user, read or not.
	Inbox(ctx context.Context, userID string) ([]domain.Message, error)
	// Unread returns delivered messages the user has not read yet.
	Unread(ctx context.Context, userID string) ([]domain.Message, error)
	// GetWithRecipients returns a message with its delivery rows.
	GetWithRecipients(ctx context.Context, messageID string) (*domain.Message, error)
	// MarkRead flips the delivery row for (message, recipient) to read.
	MarkRead(ctx context.Context, messageID, recipientID string) (*domain.MessageRecipient, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for users and messages. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	userSvc UserService
	msgSvc  MessageService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(userSvc UserService, msgSvc MessageService) *Handlers {
	return &Handlers{userSvc: userSvc, msgSvc: msgSvc}
}

//
// DTOs
//

// CreateUserRequest is the JSON payload for registering a user.
type CreateUserRequest struct {
	// Email is the unique contact address.
	Email string `json:"email" binding:"required" example:"alice@example.com"`
	// Name is the display name.
	Name string `json:"name" binding:"required" example:"Alice"`
}

// DeleteAllUsersResponse reports how many users a delete-all removed.
type DeleteAllUsersResponse struct {
	Deleted int64 `json:"deleted"`
}

//
// Handlers
//

// CreateUser godoc
// @ID          createUser
// @Summary     Create a new user
// @Description Registers a user and returns the created record.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateUserRequest  true  "Create user payload"
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid body or email"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Tags        Users
// @Produce     json
// @Success     200  {array}   domain.User
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	list, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	if list == nil {
		list = []domain.User{}
	}
	ok(c, http.StatusOK, list)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user by id
// @Tags        Users
// @Produce     json
// @Param       id  path  string  true  "User ID (UUID)"
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteAllUsers godoc
// @ID          deleteAllUsers
// @Summary     Delete every user
// @Description Removes all users; messages and delivery rows cascade. Irreversible.
// @Tags        Users
// @Success     204  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /users [delete]
func (h *Handlers) DeleteAllUsers(c *gin.Context) {
	if _, err := h.userSvc.DeleteAll(c.Request.Context()); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
