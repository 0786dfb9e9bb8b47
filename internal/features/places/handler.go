package places

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourplaces/backend/internal/pkg/geocode"
	"github.com/yourplaces/backend/internal/pkg/httperror"
	"github.com/yourplaces/backend/internal/pkg/logger"
	"github.com/yourplaces/backend/internal/pkg/storage"
)

// Store is what the handler needs from the place repository. Create and
// Delete are the transactional two-document operations.
type Store interface {
	GetByID(ctx context.Context, id string) (*Place, error)
	ListByCreator(ctx context.Context, userID string) ([]Place, error)
	Create(ctx context.Context, place *Place) error
	Update(ctx context.Context, id primitive.ObjectID, title, description string) error
	Delete(ctx context.Context, place *Place) error
}

// UserDirectory answers existence checks against the user collection.
type UserDirectory interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geocode.Location, error)
}

type Handler struct {
	places   Store
	users    UserDirectory
	geocoder Geocoder
	store    storage.Storage
}

func NewHandler(places Store, users UserDirectory, geocoder Geocoder, store storage.Storage) *Handler {
	return &Handler{places: places, users: users, geocoder: geocoder, store: store}
}

// GetByID godoc
// @Summary Get a place by id
// @Tags places
// @Produce json
// @Param pid path string true "Place ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /places/{pid} [get]
func (h *Handler) GetByID(c *gin.Context) {
	place, err := h.places.GetByID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		c.Error(httperror.Internal("Something went wrong, couldn't find the place."))
		return
	}
	if place == nil {
		c.Error(httperror.NotFound("Could not find a place for the provided id!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": place})
}

// ListByUser godoc
// @Summary List places owned by a user
// @Tags places
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /places/user/{uid} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	list, err := h.places.ListByCreator(c.Request.Context(), c.Param("uid"))
	if err != nil {
		c.Error(httperror.Internal("Something went wrong, couldn't find the places by user id."))
		return
	}

	// A user who owns nothing is answered exactly like an unknown user; the
	// frontend keys its empty state off this 404.
	if len(list) == 0 {
		c.Error(httperror.NotFound("Could not find a place for the provided user id!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": list})
}

// Create godoc
// @Summary Create a place
// @Description Geocode the address and create the place, linked to its creator in one transaction
// @Tags places
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param address formData string true "Postal address"
// @Param image formData file true "Place image"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /places [post]
func (h *Handler) Create(c *gin.Context) {
	req := &CreateRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Address:     c.PostForm("address"),
	}

	if err := ValidateCreate(req); err != nil {
		c.Error(err)
		return
	}

	location, err := h.geocoder.Resolve(c.Request.Context(), req.Address)
	if err != nil {
		c.Error(err)
		return
	}

	creator, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		c.Error(httperror.Forbidden("Authentication failed!"))
		return
	}

	exists, err := h.users.Exists(c.Request.Context(), creator)
	if err != nil {
		c.Error(httperror.Internal("Creating place failed, please try again."))
		return
	}
	if !exists {
		c.Error(httperror.NotFound("Could not find user for provided id."))
		return
	}

	place := &Place{
		Title:       req.Title,
		Description: req.Description,
		Image:       c.GetString("imagePath"),
		Address:     req.Address,
		Location:    Location{Lat: location.Lat, Lng: location.Lng},
		Creator:     creator,
	}

	if err := h.places.Create(c.Request.Context(), place); err != nil {
		c.Error(httperror.Internal("Creating place failed, please try again."))
		return
	}

	// The place record now owns the uploaded file.
	c.Set("imageCommitted", true)

	c.JSON(http.StatusCreated, gin.H{"place": place})
}

// Update godoc
// @Summary Update a place's title and description
// @Tags places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pid path string true "Place ID"
// @Param request body UpdateRequest true "New title and description"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /places/{pid} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(httperror.UnprocessableEntity("Invalid inputs passed, please check your data."))
		return
	}

	if err := ValidateUpdate(&req); err != nil {
		c.Error(err)
		return
	}

	place, err := h.places.GetByID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		c.Error(httperror.Internal("Something went wrong, could not update place!"))
		return
	}
	if place == nil {
		c.Error(httperror.NotFound("Could not find a place for the provided id!"))
		return
	}

	// Ownership is the sole authorization rule.
	if place.Creator.Hex() != c.GetString("userID") {
		c.Error(httperror.Unauthorized("You are not allowed to edit this place!"))
		return
	}

	if err := h.places.Update(c.Request.Context(), place.ID, req.Title, req.Description); err != nil {
		c.Error(httperror.Internal("Something went wrong, could not update place!"))
		return
	}

	place.Title = req.Title
	place.Description = req.Description

	c.JSON(http.StatusOK, gin.H{"place": place})
}

// Delete godoc
// @Summary Delete a place
// @Description Remove the place and its membership entry in one transaction, then delete the stored image
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param pid path string true "Place ID"
// @Success 202 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /places/{pid} [delete]
func (h *Handler) Delete(c *gin.Context) {
	place, err := h.places.GetByID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		c.Error(httperror.Internal("Something went wrong, could not delete the place!"))
		return
	}
	if place == nil {
		c.Error(httperror.NotFound("Could not find a place for the provided id!"))
		return
	}

	if place.Creator.Hex() != c.GetString("userID") {
		c.Error(httperror.Unauthorized("You are not allowed to delete this place!"))
		return
	}

	if err := h.places.Delete(c.Request.Context(), place); err != nil {
		c.Error(httperror.Internal("Something went wrong, could not delete the place!"))
		return
	}

	// Best-effort cleanup after the transaction committed; a failure here
	// must not fail the request.
	if place.Image != "" {
		if err := h.store.Remove(c.Request.Context(), place.Image); err != nil {
			logger.Error("failed to remove image %s of deleted place %s: %v", place.Image, place.ID.Hex(), err)
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Place was deleted, successfully."})
}
