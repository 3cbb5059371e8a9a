package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. An existing HX-Trigger value is merged rather than
// replaced. A flash cookie is set as well so toasts survive regular
// (non-HTMX) redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{
		"message": message,
		"type":    toastType,
	}

	trigger := map[string]any{"showToast": payload}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		var merged map[string]any
		if err := json.Unmarshal([]byte(existing), &merged); err == nil {
			merged["showToast"] = payload
			trigger = merged
		} else {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
		}
	}

	data, err := json.Marshal(trigger)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	// Flash cookie for non-HTMX 302s where HX-Trigger is lost
	if cookieVal, err := json.Marshal(payload); err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error
// text into the DOM. HX-Reswap: none makes HTMX ignore the response body
// while the HX-Trigger header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
