package handler

import (
	"errors"
	"log"
	"net/http"

	"church_membership/internal/middleware"
	"church_membership/internal/model"
	"church_membership/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles member roster requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func parseUserID(c *gin.Context, param string) (string, bool) {
	id := c.Param(param)
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return "", false
	}
	return id, true
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetCounts(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		log.Printf("Error counting users: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to get users count")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Search falls back to the full roster when no query is given
func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	var (
		users []model.User
		err   error
	)
	if query == "" {
		users, err = h.service.GetAll(c.Request.Context())
	} else {
		users, err = h.service.Search(c.Request.Context(), query)
	}
	if err != nil {
		log.Printf("Error searching users: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to search users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetAdmins(c *gin.Context) {
	admins, err := h.service.GetAdmins(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching admins: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch admins")
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error fetching user: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrPhoneTaken) ||
			errors.Is(err, service.ErrContactTaken) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		log.Printf("Error creating user: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrPhoneTaken),
			errors.Is(err, service.ErrContactTaken):
			respondError(c, http.StatusConflict, err.Error())
		default:
			log.Printf("Error updating user: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required,oneof=USER ADMIN"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error updating user role: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error deleting user: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterUserRoutes registers user routes; all of them require a session
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := rg.Group("/users")
	userGroup.Use(authMW)
	{
		userGroup.GET("", h.GetAll)
		userGroup.GET("/count", h.GetCounts)
		userGroup.GET("/search", h.Search)
		userGroup.GET("/admins", h.GetAdmins)
		userGroup.GET("/:id", h.GetByID)
		userGroup.POST("", h.Create)
		userGroup.PUT("/:id", h.Update)
		userGroup.PUT("/:id/role", middleware.AdminMiddleware(), h.UpdateRole)
		userGroup.DELETE("/:id", h.Delete)
	}
}
