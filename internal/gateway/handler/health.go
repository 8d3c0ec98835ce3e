package handler

import "net/http"

const (
	ServiceName = "codeviz"
	Version     = "0.1.0"
)

func HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"service": ServiceName, "version": Version})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleFavicon answers with an empty object so browsers stop asking.
func HandleFavicon(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, struct{}{})
}
