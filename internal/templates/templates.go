package templates

import (
	"html"
	"net/http"
	"os"
	"strconv"
	"strings"

	"chessroom/internal/storage"
)

// WriteHomeHTML serves the home page template with archive counters.
func WriteHomeHTML(w http.ResponseWriter, stats storage.Stats) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	content, err := os.ReadFile("internal/templates/home.html")
	if err != nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	html := string(content)
	html = strings.ReplaceAll(html, "{{GAMES_STARTED}}", strconv.FormatInt(stats.Started, 10))
	html = strings.ReplaceAll(html, "{{GAMES_ACTIVE}}", strconv.FormatInt(stats.Active, 10))
	html = strings.ReplaceAll(html, "{{GAMES_COMPLETED}}", strconv.FormatInt(stats.Completed, 10))

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// WriteRoomHTML serves the room page template with room ID substitution.
func WriteRoomHTML(w http.ResponseWriter, roomID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	content, err := os.ReadFile("internal/templates/room.html")
	if err != nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	page := strings.ReplaceAll(string(content), "{{ROOM_ID}}", html.EscapeString(roomID))
	_, _ = w.Write([]byte(page))
}
