package shifts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// setupRoutes configures HTTP routes for the shift service
func (s *Service) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	if s.metrics != nil {
		router.Use(s.metrics.HTTPMiddleware)
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	// Shift assignment routes
	api.HandleFunc("/shifts/assign", s.assignShiftHandler).Methods("POST")
	api.HandleFunc("/shifts/allocated", s.listAllocationsHandler).Methods("GET")
	api.HandleFunc("/shifts/history", s.listHistoryHandler).Methods("GET")
	api.HandleFunc("/shifts/{id}", s.getShiftHandler).Methods("GET")
	api.HandleFunc("/shifts/{id}/status", s.transitionShiftHandler).Methods("PUT")

	// Live availability
	api.HandleFunc("/ambulances/available", s.availableVehiclesHandler).Methods("GET")

	// Health check
	if s.health != nil {
		api.HandleFunc("/health", s.health.HTTPHandler()).Methods("GET")
	}

	s.logger.Info("Shift service routes configured")
	return router
}

// assignShiftHandler handles shift assignment requests
func (s *Service) assignShiftHandler(w http.ResponseWriter, r *http.Request) {
	var req types.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := s.AssignShift(&req)
	if err != nil {
		s.writeOpsError(w, "Failed to assign shift", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, a)
}

// getShiftHandler handles shift retrieval
func (s *Service) getShiftHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID := vars["id"]

	a, err := s.GetShift(shiftID)
	if err != nil {
		s.writeOpsError(w, "Failed to get shift", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, a)
}

// transitionShiftHandler handles shift status transitions
func (s *Service) transitionShiftHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID := vars["id"]

	var req struct {
		Status types.ShiftStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := s.TransitionShift(shiftID, req.Status); err != nil {
		s.writeOpsError(w, "Failed to transition shift", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Shift status updated successfully"})
}

// listAllocationsHandler handles roster queries by date and slot
func (s *Service) listAllocationsHandler(w http.ResponseWriter, r *http.Request) {
	shiftDate := r.URL.Query().Get("date")
	slot := types.SlotLabel(r.URL.Query().Get("slot"))

	roster, err := s.ListAllocations(shiftDate, slot)
	if err != nil {
		s.writeOpsError(w, "Failed to list allocations", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"data": roster})
}

// listHistoryHandler handles full shift history queries
func (s *Service) listHistoryHandler(w http.ResponseWriter, r *http.Request) {
	roster, err := s.ListHistory()
	if err != nil {
		s.writeOpsError(w, "Failed to list shift history", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"data": roster})
}

// availableVehiclesHandler answers the live availability query. An optional
// "at" query parameter (RFC 3339) pins the evaluation instant; it defaults
// to the current wall-clock time.
func (s *Service) availableVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			s.writeErrorResponse(w, http.StatusBadRequest, "Invalid 'at' timestamp", err)
			return
		}
		now = parsed
	}

	vehicles, err := s.ListAvailableVehicles(now)
	if err != nil {
		s.writeOpsError(w, "Failed to query available vehicles", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"available_ambulances": vehicles})
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
