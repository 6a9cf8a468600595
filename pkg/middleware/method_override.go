package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/shopapp/pkg/bind"
	"github.com/shashiranjanraj/shopapp/pkg/fault"
)

// MethodOverride lets HTML forms reach PUT, PATCH and DELETE routes.
// A POST carrying _method in the query string or in a urlencoded body is
// re-dispatched with that verb:
//
//	<form method="POST" action="/products/{id}?_method=DELETE">
//
// A urlencoded body is read here under the MAX_BODY_BYTES cap. A body over
// the cap ends the request with a 400.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m, ok, err := overrideMethod(w, r)
			if err != nil {
				fault.Normalizer{}.HandleError(w, r, fault.New(http.StatusBadRequest, err.Error()))
				return
			}
			if ok {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	raw := r.URL.Query().Get(bind.MethodField)

	if raw == "" {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/x-www-form-urlencoded" {
			// The parsed body stays in r.PostForm for bind.Fields.
			if err := bind.ParseForm(w, r); err != nil {
				return "", false, err
			}
			raw = r.PostForm.Get(bind.MethodField)
		}
	}

	switch m := strings.ToUpper(strings.TrimSpace(raw)); m {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return m, true, nil
	}
	return "", false, nil
}
