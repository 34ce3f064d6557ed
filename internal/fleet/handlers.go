package fleet

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// setupRoutes configures HTTP routes for the fleet service
func (s *Service) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	if s.metrics != nil {
		router.Use(s.metrics.HTTPMiddleware)
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	// Provider routes
	api.HandleFunc("/providers/register", s.registerProviderHandler).Methods("POST")
	api.HandleFunc("/providers", s.listProvidersHandler).Methods("GET")
	api.HandleFunc("/providers/{uid}", s.getProviderHandler).Methods("GET")
	api.HandleFunc("/providers/{uid}/status", s.setProviderStatusHandler).Methods("PUT")

	// Vehicle routes
	api.HandleFunc("/providers/{uid}/ambulances", s.registerVehicleHandler).Methods("POST")
	api.HandleFunc("/providers/{uid}/ambulances", s.listVehiclesHandler).Methods("GET")
	api.HandleFunc("/ambulances/{id}/status", s.setVehicleStatusHandler).Methods("PUT")

	// Driver routes
	api.HandleFunc("/providers/{uid}/drivers", s.registerDriverHandler).Methods("POST")
	api.HandleFunc("/providers/{uid}/drivers", s.listDriversHandler).Methods("GET")
	api.HandleFunc("/drivers/{id}/status", s.setDriverStatusHandler).Methods("PUT")

	// Health check
	if s.health != nil {
		api.HandleFunc("/health", s.health.HTTPHandler()).Methods("GET")
	}

	s.logger.Info("Fleet service routes configured")
	return router
}

// registerProviderHandler handles provider registration
func (s *Service) registerProviderHandler(w http.ResponseWriter, r *http.Request) {
	var p types.Provider
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := s.RegisterProvider(&p)
	if err != nil {
		s.writeOpsError(w, "Failed to register provider", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getProviderHandler handles provider lookup by UID
func (s *Service) getProviderHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	p, err := s.GetProviderByUID(vars["uid"])
	if err != nil {
		s.writeOpsError(w, "Failed to get provider", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, p)
}

// listProvidersHandler handles provider listing with optional status filter
func (s *Service) listProvidersHandler(w http.ResponseWriter, r *http.Request) {
	status := types.ProviderStatus(r.URL.Query().Get("status"))

	providers, err := s.ListProviders(status)
	if err != nil {
		s.writeOpsError(w, "Failed to list providers", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"providers": providers})
}

// setProviderStatusHandler handles the administrative approval decision
func (s *Service) setProviderStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status types.ProviderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	actor := r.Header.Get("X-User-ID")
	if actor == "" {
		actor = "anonymous"
	}

	if err := s.SetProviderStatus(vars["uid"], req.Status, actor); err != nil {
		s.writeOpsError(w, "Failed to update provider status", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Provider status updated successfully"})
}

// registerVehicleHandler handles vehicle registration
func (s *Service) registerVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var v types.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := s.RegisterVehicle(vars["uid"], &v)
	if err != nil {
		s.writeOpsError(w, "Failed to register vehicle", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// listVehiclesHandler handles vehicle listing by provider
func (s *Service) listVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vehicles, err := s.ListVehiclesByProvider(vars["uid"])
	if err != nil {
		s.writeOpsError(w, "Failed to list vehicles", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"ambulances": vehicles})
}

// setVehicleStatusHandler handles vehicle status updates
func (s *Service) setVehicleStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status types.OperationalStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := s.SetVehicleStatus(vars["id"], req.Status); err != nil {
		s.writeOpsError(w, "Failed to update vehicle status", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Vehicle status updated successfully"})
}

// registerDriverHandler handles driver registration
func (s *Service) registerDriverHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var d types.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := s.RegisterDriver(vars["uid"], &d)
	if err != nil {
		s.writeOpsError(w, "Failed to register driver", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// listDriversHandler handles driver listing by provider
func (s *Service) listDriversHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	drivers, err := s.ListDriversByProvider(vars["uid"])
	if err != nil {
		s.writeOpsError(w, "Failed to list drivers", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"drivers": drivers})
}

// setDriverStatusHandler handles driver status updates
func (s *Service) setDriverStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status types.OperationalStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := s.SetDriverStatus(vars["id"], req.Status); err != nil {
		s.writeOpsError(w, "Failed to update driver status", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Driver status updated successfully"})
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
