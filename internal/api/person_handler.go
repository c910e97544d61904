package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/service"
)

// PersonHandler holds the person service dependency.
type PersonHandler struct {
	personService service.PersonService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService service.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// --- Request Structs ---

type CreatePersonRequest struct {
	Name         string              `json:"name" binding:"required"`
	Relationship domain.Relationship `json:"relationship" binding:"required,oneof=partner child parent sibling friend other"`
	Interests    []string            `json:"interests,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Location     string              `json:"location,omitempty"`
}

type UpdatePersonRequest struct {
	Name         string              `json:"name" binding:"required"`
	Relationship domain.Relationship `json:"relationship" binding:"required,oneof=partner child parent sibling friend other"`
	Interests    []string            `json:"interests,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Location     string              `json:"location,omitempty"`
}

type RequestAvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmAvatarUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

func (h *PersonHandler) CreatePerson(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	person := &domain.Person{
		UserID:       userID,
		Name:         req.Name,
		Relationship: req.Relationship,
		Interests:    req.Interests,
		Notes:        req.Notes,
		Location:     req.Location,
	}

	created, err := h.personService.CreatePerson(c.Request.Context(), person)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create person")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *PersonHandler) GetPeople(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	people, err := h.personService.GetPeople(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load people")
		return
	}

	c.JSON(http.StatusOK, people)
}

func (h *PersonHandler) GetPerson(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	personID, ok := parseObjectIDParam(c, "personId")
	if !ok {
		return
	}

	person, err := h.personService.GetPerson(c.Request.Context(), personID, userID)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load person")
		}
		return
	}

	c.JSON(http.StatusOK, person)
}

func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	personID, ok := parseObjectIDParam(c, "personId")
	if !ok {
		return
	}

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	person := &domain.Person{
		ID:           personID,
		UserID:       userID,
		Name:         req.Name,
		Relationship: req.Relationship,
		Interests:    req.Interests,
		Notes:        req.Notes,
		Location:     req.Location,
	}

	updated, err := h.personService.UpdatePerson(c.Request.Context(), person)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update person")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PersonHandler) DeletePerson(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	personID, ok := parseObjectIDParam(c, "personId")
	if !ok {
		return
	}

	if err := h.personService.DeletePerson(c.Request.Context(), personID, userID); err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete person")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestAvatarUpload returns a presigned PUT URL for the person's photo.
func (h *PersonHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	personID, ok := parseObjectIDParam(c, "personId")
	if !ok {
		return
	}

	var req RequestAvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, objectKey, err := h.personService.RequestAvatarUpload(c.Request.Context(), personID, userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"objectKey": objectKey,
	})
}

// ConfirmAvatarUpload records the uploaded object key on the person.
func (h *PersonHandler) ConfirmAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	personID, ok := parseObjectIDParam(c, "personId")
	if !ok {
		return
	}

	var req ConfirmAvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.personService.ConfirmAvatarUpload(c.Request.Context(), personID, userID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm avatar upload")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
