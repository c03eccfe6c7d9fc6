package demo

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Error bodies are plain text with a proper status code; the client
// surfaces them verbatim.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	items, ok := itemsByCategory[category]
	if !ok {
		http.Error(w, "Unknown category: "+category, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// validMobile mirrors the backend's registration rule: digits only,
// leading 3, exactly 10 digits.
func validMobile(mobile string) bool {
	if len(mobile) != 10 || mobile[0] != '3' {
		return false
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Mobile      string `json:"mobile"`
		Address     string `json:"address"`
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	mobile := strings.TrimSpace(req.Mobile)
	address := strings.TrimSpace(req.Address)
	countryCode := req.CountryCode
	if countryCode == "" {
		countryCode = "+92"
	}

	if name == "" {
		http.Error(w, "Name cannot be empty.", http.StatusBadRequest)
		return
	}
	if !validMobile(mobile) {
		http.Error(w, "Mobile must be 10 digits, start with 3 and contain only digits (e.g., 3001234567).", http.StatusBadRequest)
		return
	}
	if len(address) < 3 {
		http.Error(w, "Address cannot be empty or too short.", http.StatusBadRequest)
		return
	}

	sess := &session{
		user: user{Name: name, Mobile: countryCode + mobile, Address: address},
		cart: []cartLine{},
	}
	id := "sess_" + uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"user":       sess.user,
	})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string  `json:"session_id"`
		ItemName  string  `json:"itemName"`
		Price     float64 `json:"price"`
		Qty       int     `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body.", http.StatusBadRequest)
		return
	}
	if req.Qty < 1 {
		req.Qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[req.SessionID]
	if !ok {
		http.Error(w, "Session not found.", http.StatusNotFound)
		return
	}

	merged := false
	for i := range sess.cart {
		if sess.cart[i].Name == req.ItemName {
			sess.cart[i].Qty += req.Qty
			sess.cart[i].Subtotal = float64(sess.cart[i].Qty) * sess.cart[i].Price
			merged = true
			break
		}
	}
	if !merged {
		sess.cart = append(sess.cart, cartLine{
			Name:     req.ItemName,
			Price:    req.Price,
			Qty:      req.Qty,
			Subtotal: req.Price * float64(req.Qty),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": sess.cart})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		ItemName  string `json:"itemName"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body.", http.StatusBadRequest)
		return
	}
	if req.Qty < 1 {
		req.Qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[req.SessionID]
	if !ok {
		http.Error(w, "Session not found.", http.StatusNotFound)
		return
	}

	for i := range sess.cart {
		if !strings.EqualFold(sess.cart[i].Name, req.ItemName) {
			continue
		}
		if sess.cart[i].Qty <= req.Qty {
			sess.cart = append(sess.cart[:i], sess.cart[i+1:]...)
		} else {
			sess.cart[i].Qty -= req.Qty
			sess.cart[i].Subtotal = float64(sess.cart[i].Qty) * sess.cart[i].Price
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": sess.cart})
		return
	}

	http.Error(w, "Item '"+req.ItemName+"' not present in cart.", http.StatusNotFound)
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		http.Error(w, "Session not found.", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": sess.user, "cart": sess.cart})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID     string `json:"session_id"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[req.SessionID]
	if !ok {
		http.Error(w, "Session not found.", http.StatusNotFound)
		return
	}
	if len(sess.cart) == 0 {
		http.Error(w, "Cart is empty.", http.StatusBadRequest)
		return
	}

	sess.cart = []cartLine{}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Order placed"})
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	// A missing or malformed body is treated as no session, like the
	// original backend.
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[req.SessionID]; ok {
		delete(s.sessions, req.SessionID)
		writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": false})
}
