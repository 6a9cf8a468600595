// Package render turns a render instruction (view name + data) into a
// response document. Templates live outside this service; the default
// renderer emits the instruction as JSON so any view layer can consume it:
//
//	{"status":200,"view":"products/show","data":{"product":{...}}}
package render

import (
	"encoding/json"
	"net/http"
)

// Map is the data handed to a view.
type Map map[string]any

// Renderer writes the response for a view.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data Map) error
}

type document struct {
	Status int    `json:"status"`
	View   string `json:"view"`
	Data   Map    `json:"data,omitempty"`
}

// JSON is the default Renderer.
type JSON struct{}

// Render encodes the whole document before touching w, so an unencodable
// value leaves the response unwritten.
func (JSON) Render(w http.ResponseWriter, status int, view string, data Map) error {
	body, err := json.Marshal(document{Status: status, View: view, Data: data})
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}

// Func adapts a plain function to Renderer.
type Func func(w http.ResponseWriter, status int, view string, data Map) error

func (f Func) Render(w http.ResponseWriter, status int, view string, data Map) error {
	return f(w, status, view, data)
}
