package fakeserver

import (
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, "Users retrieved successfully", s.store.listUsers())
}

// updateUserBan accepts the flag as isBanned or is_banned.
func (s *Server) updateUserBan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid user id")

		return
	}

	var body map[string]interface{}

	err := decodeJSON(r, &body)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	banned, ok := body["isBanned"].(bool)
	if !ok {
		banned, ok = body["is_banned"].(bool)
	}

	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "isBanned field is required")

		return
	}

	user, err := s.store.setBanned(id, banned, s.clock())
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("User not found with id: %d", id))

		return
	}

	s.respondData(w, http.StatusOK, "User status updated successfully", user)
}

func (s *Server) updateItemStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Invalid item id")

		return
	}

	var body struct {
		Status          string `json:"status"`
		Type            string `json:"type"`
		RejectionReason string `json:"rejectionReason"`
	}

	err := decodeJSON(r, &body)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	if body.Status == "" || body.Type == "" {
		s.respondError(w, r, http.StatusBadRequest, "status and type fields are required")

		return
	}

	status, ok := lostfound.ParseItemStatus(body.Status)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Status must be PENDING, APPROVED or REJECTED")

		return
	}

	itemType, ok := lostfound.ParseItemType(body.Type)
	if !ok {
		s.respondError(w, r, http.StatusBadRequest, "Type must be LOST or FOUND")

		return
	}

	now := s.clock()

	var item interface{}

	switch itemType {
	case lostfound.ItemTypeLost:
		item, err = s.store.updateLost(id, func(it *lostfound.LostItem) { it.Status = status }, now)
	case lostfound.ItemTypeFound:
		item, err = s.store.updateFound(id, func(it *lostfound.FoundItem) {
			it.Status = status
			it.RejectionReason = ""

			if status == lostfound.StatusRejected {
				it.RejectionReason = body.RejectionReason
			}
		}, now)
	}

	if err != nil {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Item not found with id: %d", id))

		return
	}

	s.store.moderated(itemType, id, status, now)
	s.respondData(w, http.StatusOK, "Item status updated successfully", item)
}

func (s *Server) reports(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, http.StatusOK, "System reports retrieved successfully", s.store.report())
}
