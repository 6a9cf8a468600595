package docstore

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// Matches reports whether raw satisfies every equality in filter. Values are
// compared by their BSON encoding, so a Go string matches a stored string
// and an ObjectID matches a stored ObjectID.
func Matches(raw bson.Raw, filter Filter) (bool, error) {
	for key, want := range filter {
		got, err := raw.LookupErr(key)
		if err != nil {
			if want == nil {
				continue
			}
			return false, nil
		}

		t, data, err := bson.MarshalValue(want)
		if err != nil {
			return false, fmt.Errorf("docstore: filter %q: %w", key, err)
		}
		if got.Type != t || !bytes.Equal(got.Value, data) {
			return false, nil
		}
	}
	return true, nil
}

// DecodeAll decodes raws into results, a pointer to a slice.
func DecodeAll(raws []bson.Raw, results any) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return errors.New("docstore: results must be a pointer to a slice")
	}

	slice := rv.Elem()
	elemType := slice.Type().Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(raws))

	for _, raw := range raws {
		item := reflect.New(elemType)
		if err := bson.Unmarshal(raw, item.Interface()); err != nil {
			return fmt.Errorf("docstore: decode: %w", err)
		}
		out = reflect.Append(out, item.Elem())
	}

	slice.Set(out)
	return nil
}
