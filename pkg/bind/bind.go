// Package bind reads the submitted fields of an HTTP request.
//
// Form bodies (application/x-www-form-urlencoded, multipart/form-data) and
// JSON objects are both flattened into a field → text map so schema
// validation sees the same shape regardless of how the client posted.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/shopapp/config"
)

// MethodField is the form field used for verb tunnelling. It is never
// returned as a submitted field.
const MethodField = "_method"

// MaxBodyBytes returns the configured request body size limit (default 4 MB).
func MaxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// Fields returns the submitted fields of r. Only the first value of a
// repeated form key is kept. An empty body yields an empty map.
// The body is capped at MAX_BODY_BYTES (default 4 MB).
func Fields(r *http.Request) (map[string]string, error) {
	out := make(map[string]string)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" && r.PostForm != nil {
		// Already parsed (and capped) by ParseForm in middleware.MethodOverride.
		copyForm(r.PostForm, out)
		return out, nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return out, nil
	}

	limitBody(nil, r)

	switch mediaType {
	case "application/json":
		if err := decodeJSON(r, out); err != nil {
			return nil, err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxBodyBytes()); err != nil {
			return nil, wrapBodyErr("invalid form", err)
		}
		copyForm(r.PostForm, out)
	default:
		if err := r.ParseForm(); err != nil {
			return nil, wrapBodyErr("invalid form", err)
		}
		copyForm(r.PostForm, out)
	}

	return out, nil
}

// ParseForm caps r.Body at MaxBodyBytes and parses it into r.PostForm. An
// oversized or unreadable body is reported with the same text Fields uses.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	limitBody(w, r)
	if err := r.ParseForm(); err != nil {
		return wrapBodyErr("invalid form", err)
	}
	return nil
}

func limitBody(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes())
	}
}

func copyForm(form map[string][]string, out map[string]string) {
	for key, vals := range form {
		if key == MethodField || len(vals) == 0 {
			continue
		}
		out[key] = vals[0]
	}
}

func decodeJSON(r *http.Request, out map[string]string) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return wrapBodyErr("invalid JSON", err)
	}

	for key, val := range raw {
		if key == MethodField {
			continue
		}
		switch v := val.(type) {
		case nil:
			continue
		case string:
			out[key] = v
		case json.Number:
			out[key] = v.String()
		case bool:
			out[key] = strconv.FormatBool(v)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("invalid JSON field %q: %w", key, err)
			}
			out[key] = string(b)
		}
	}
	return nil
}

func wrapBodyErr(prefix string, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
