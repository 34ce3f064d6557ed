package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// setupRoutes configures HTTP routes for the booking service
func (s *Service) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	if s.metrics != nil {
		router.Use(s.metrics.HTTPMiddleware)
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/bookings", s.createBookingHandler).Methods("POST")
	api.HandleFunc("/bookings", s.listBookingsHandler).Methods("GET")

	if s.health != nil {
		api.HandleFunc("/health", s.health.HTTPHandler()).Methods("GET")
	}

	s.logger.Info("Booking service routes configured")
	return router
}

// createBookingHandler handles public booking requests
func (s *Service) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var b types.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := s.CreateBooking(&b)
	if err != nil {
		s.writeOpsError(w, "Failed to create booking", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// listBookingsHandler handles booking listing, newest first
func (s *Service) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.ListBookings()
	if err != nil {
		s.writeOpsError(w, "Failed to list bookings", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// writeOpsError maps typed domain errors to HTTP status codes
func (s *Service) writeOpsError(w http.ResponseWriter, message string, err error) {
	var opsErr *types.OpsError
	if errors.As(err, &opsErr) {
		switch opsErr.Type {
		case types.ErrorTypeValidation:
			s.writeErrorResponse(w, http.StatusBadRequest, message, err)
		case types.ErrorTypeConflict:
			s.writeErrorResponse(w, http.StatusConflict, message, err)
		case types.ErrorTypeNotFound:
			s.writeErrorResponse(w, http.StatusNotFound, message, err)
		case types.ErrorTypeExternal:
			s.writeErrorResponse(w, http.StatusServiceUnavailable, message, err)
		default:
			s.writeErrorResponse(w, http.StatusInternalServerError, message, err)
		}
		return
	}
	s.writeErrorResponse(w, http.StatusInternalServerError, message, err)
}

// writeJSONResponse writes a JSON response
func (s *Service) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes an error response
func (s *Service) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	s.logger.Errorf("%s: %v", message, err)

	response := map[string]interface{}{
		"error":  message,
		"status": statusCode,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	s.writeJSONResponse(w, statusCode, response)
}
