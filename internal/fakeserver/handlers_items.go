package fakeserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
)

// itemPatch carries the fields a PATCH may change; nil means unchanged.
type itemPatch struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"`
	Location        *string    `json:"location"`
	ImageURL        *string    `json:"imageUrl"`
	LostDate        *time.Time `json:"lostDate"`
	FoundDate       *time.Time `json:"foundDate"`
	StorageLocation *string    `json:"storageLocation"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (p itemPatch) applyLost(item *lostfound.LostItem) {
	setString(&item.Title, p.Title)
	setString(&item.Description, p.Description)
	setString(&item.Category, p.Category)
	setString(&item.Location, p.Location)
	setString(&item.ImageURL, p.ImageURL)

	if p.LostDate != nil {
		item.LostDate = *p.LostDate
	}
}

func (p itemPatch) applyFound(item *lostfound.FoundItem) {
	setString(&item.Title, p.Title)
	setString(&item.Description, p.Description)
	setString(&item.Category, p.Category)
	setString(&item.Location, p.Location)
	setString(&item.ImageURL, p.ImageURL)
	setString(&item.StorageLocation, p.StorageLocation)

	if p.FoundDate != nil {
		item.FoundDate = *p.FoundDate
	}
}

func canModify(user lostfound.User, ownerID int64) bool {
	return user.ID == ownerID || user.Role == lostfound.RoleAdmin
}

func (s *Server) listLostItems(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, "Lost items retrieved successfully", s.store.lostByOwner(currentUser(r).ID))
}

func (s *Server) createLostItem(w http.ResponseWriter, r *http.Request) {
	var req lostfound.LostItemRequest

	err := decodeJSON(r, &req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	err = s.validator.Struct(req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())

		return
	}

	item := s.store.createLost(lostfound.LostItem{
		UserID:      currentUser(r).ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		LostDate:    req.LostDate,
	}, s.clock())

	s.respondData(w, http.StatusCreated, "Lost item reported successfully", item)
}

func (s *Server) getLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	item, err := s.store.lostByID(id)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Lost item not found with id: %d", id))

		return
	}

	if !canModify(currentUser(r), item.UserID) {
		s.respondError(w, r, http.StatusForbidden, "You can only view your own lost items")

		return
	}

	s.respondData(w, http.StatusOK, "Lost item retrieved successfully", item)
}

func (s *Server) updateLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	var patch itemPatch

	err := decodeJSON(r, &patch)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	existing, err := s.store.lostByID(id)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Lost item not found with id: %d", id))

		return
	}

	if !canModify(currentUser(r), existing.UserID) {
		s.respondError(w, r, http.StatusForbidden, "You can only update your own lost items")

		return
	}

	item, err := s.store.updateLost(id, patch.applyLost, s.clock())
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Lost item not found with id: %d", id))

		return
	}

	s.respondData(w, http.StatusOK, "Lost item updated successfully", item)
}

func (s *Server) deleteLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	item, err := s.store.lostByID(id)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Lost item not found with id: %d", id))

		return
	}

	if !canModify(currentUser(r), item.UserID) {
		s.respondError(w, r, http.StatusForbidden, "You can only delete your own lost items")

		return
	}

	s.store.deleteLost(id)
	s.respondData(w, http.StatusOK, "Lost item deleted successfully", nil)
}

func (s *Server) listFoundItems(w http.ResponseWriter, r *http.Request) {
	items := s.store.searchFound(r.URL.Query().Get("search"))
	s.respondData(w, http.StatusOK, "Found items retrieved successfully", items)
}

func (s *Server) createFoundItem(w http.ResponseWriter, r *http.Request) {
	var req lostfound.FoundItemRequest

	err := decodeJSON(r, &req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	err = s.validator.Struct(req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())

		return
	}

	item := s.store.createFound(lostfound.FoundItem{
		UserID:          currentUser(r).ID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		ImageURL:        req.ImageURL,
		FoundDate:       req.FoundDate,
		StorageLocation: req.StorageLocation,
	}, s.clock())

	s.respondData(w, http.StatusCreated, "Found item reported successfully", item)
}

func (s *Server) getFoundItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	item, err := s.store.foundByID(id)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Found item not found with id: %d", id))

		return
	}

	s.respondData(w, http.StatusOK, "Found item retrieved successfully", item)
}

func (s *Server) updateFoundItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	var patch itemPatch

	err := decodeJSON(r, &patch)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	existing, err := s.store.foundByID(id)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Found item not found with id: %d", id))

		return
	}

	if !canModify(currentUser(r), existing.UserID) {
		s.respondError(w, r, http.StatusForbidden, "You can only update your own found items")

		return
	}

	item, err := s.store.updateFound(id, patch.applyFound, s.clock())
	if errors.Is(err, ErrItemNotFound) {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Found item not found with id: %d", id))

		return
	}

	s.respondData(w, http.StatusOK, "Found item updated successfully", item)
}

func (s *Server) deleteFoundItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	item, err := s.store.foundByID(id)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Found item not found with id: %d", id))

		return
	}

	if !canModify(currentUser(r), item.UserID) {
		s.respondError(w, r, http.StatusForbidden, "You can only delete your own found items")

		return
	}

	s.store.deleteFound(id)
	s.respondData(w, http.StatusOK, "Found item deleted successfully", nil)
}
