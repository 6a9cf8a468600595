package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/pkg/fault"
	"github.com/shashiranjanraj/shopapp/pkg/validate"
)

// Garment is a producer that owns an ordered list of products. The list may
// hold ids of products that no longer exist.
type Garment struct {
	ID       primitive.ObjectID   `bson:"_id"      json:"id"`
	Name     string               `bson:"name"     json:"name"`
	Location string               `bson:"location" json:"location"`
	Contact  string               `bson:"contact"  json:"contact"`
	Products []primitive.ObjectID `bson:"products" json:"products"`
}

type garmentForm struct {
	Name     string `form:"name"     validate:"required" message:"nama tidak boleh kosong"`
	Location string `form:"location" validate:"required" message:"lokasi tidak boleh kosong"`
	Contact  string `form:"contact"  validate:"required" message:"kontak tidak boleh kosong"`
}

// NewGarment validates fields and returns a Garment with a fresh identifier
// and no products.
func NewGarment(fields Fields) (Garment, error) {
	g, err := Garment{}.Apply(fields)
	if err != nil {
		return Garment{}, err
	}
	g.ID = primitive.NewObjectID()
	g.Products = []primitive.ObjectID{}
	return g, nil
}

// Apply returns g with the supplied fields replaced, validated as a whole.
// The product list is not a form field.
func (g Garment) Apply(fields Fields) (Garment, error) {
	form := garmentForm{Name: g.Name, Location: g.Location, Contact: g.Contact}
	if v, ok := fields["name"]; ok {
		form.Name = v
	}
	if v, ok := fields["location"]; ok {
		form.Location = v
	}
	if v, ok := fields["contact"]; ok {
		form.Contact = v
	}

	if errs := validate.Struct(form); validate.HasErrors(errs) {
		return Garment{}, fault.Validation("Garment", violations(errs))
	}

	out := g
	out.Name = form.Name
	out.Location = form.Location
	out.Contact = form.Contact
	return out, nil
}

// AddProduct appends id to the product list.
func (g Garment) AddProduct(id primitive.ObjectID) Garment {
	g.Products = append(append([]primitive.ObjectID(nil), g.Products...), id)
	return g
}

// RemoveProduct drops every occurrence of id and reports whether any was found.
func (g Garment) RemoveProduct(id primitive.ObjectID) (Garment, bool) {
	kept := make([]primitive.ObjectID, 0, len(g.Products))
	found := false
	for _, p := range g.Products {
		if p == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	g.Products = kept
	return g, found
}

// GarmentDetail is a Garment with its product list resolved. Dangling
// references are omitted.
type GarmentDetail struct {
	Garment
	Products []Product `json:"products"`
}
