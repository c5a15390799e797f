package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/elsaferati/Primex-TaskManager-sub003/middleware"

	"github.com/gorilla/mux"
)

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already out, so just log.
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP Error %d: %s", statusCode, message)
	response := map[string]string{"error": message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding error JSON response: %v", err)
	}
}

// currentUserID pulls the authenticated user ID out of the request context.
func currentUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	return userID, ok && userID != 0
}

// pathID parses a numeric {name} path variable.
func pathID(r *http.Request, name string) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars[name], 10, 64)
}

// queryInt64 parses an optional numeric query parameter, nil when absent.
func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
