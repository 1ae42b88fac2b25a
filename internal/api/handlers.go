package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"movesmart/internal/database"
	"movesmart/internal/export"
	"movesmart/internal/models"
	"movesmart/internal/service"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.bookings.Submit(r.Context(), &booking); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": verr.Message,
				"field": verr.Field,
			})
			return
		}
		s.logger.Error().Err(err).Msg("create booking failed")
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Booking request received! We will contact you within 24 hours.",
		"booking_id": booking.ID,
	})
}

func (s *HTTPServer) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var message models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.contacts.Submit(r.Context(), &message); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": verr.Message,
				"field": verr.Field,
			})
			return
		}
		s.logger.Error().Err(err).Msg("create contact message failed")
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Thank you for your message! We will get back to you soon.",
		"message_id": message.ID,
	})
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	services, err := s.catalog.ActiveServices(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list services failed")
		writeError(w, http.StatusInternalServerError, "failed to load services")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *HTTPServer) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	testimonials, err := s.catalog.FeaturedTestimonials(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list testimonials failed")
		writeError(w, http.StatusInternalServerError, "failed to load testimonials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonials": testimonials})
}

func (s *HTTPServer) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list bookings failed")
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("export bookings failed")
		writeError(w, http.StatusInternalServerError, "failed to export bookings")
		return
	}

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := export.WriteBookingsXLSX(w, bookings); err != nil {
		s.logger.Error().Err(err).Msg("write export failed")
	}
}

// handleAdminBookingStatus serves PUT /api/admin/bookings/{id}/status.
func (s *HTTPServer) handleAdminBookingStatus(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/admin/bookings/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "status" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.bookings.UpdateStatus(r.Context(), id, body.Status); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": verr.Message,
				"field": verr.Field,
			})
			return
		}
		if errors.Is(err, database.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("update status failed")
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Booking status updated",
		"status":  body.Status,
	})
}
