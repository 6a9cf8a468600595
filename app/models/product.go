package models

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/pkg/fault"
	"github.com/shashiranjanraj/shopapp/pkg/validate"
)

// Fields are submitted form values keyed by field name.
type Fields map[string]string

// Category is the fixed product classification.
type Category string

const (
	CategoryBaju      Category = "Baju"
	CategoryCelana    Category = "Celana"
	CategoryAksesoris Category = "Aksesoris"
	CategoryJaket     Category = "Jaket"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryBaju, CategoryCelana, CategoryAksesoris, CategoryJaket}

// Product is an item in the catalog. Garment is the owning producer, if any.
type Product struct {
	ID       primitive.ObjectID  `bson:"_id"                json:"id"`
	Name     string              `bson:"name"               json:"name"`
	Brand    string              `bson:"brand"              json:"brand"`
	Price    float64             `bson:"price"              json:"price"`
	Color    string              `bson:"color"              json:"color"`
	Category Category            `bson:"category,omitempty" json:"category,omitempty"`
	Garment  *primitive.ObjectID `bson:"garment,omitempty"  json:"garment,omitempty"`
}

// productForm is the schema submitted fields are checked against.
type productForm struct {
	Name     string `form:"name"     validate:"required"               message:"nama tidak boleh kosong"`
	Brand    string `form:"brand"    validate:"required"               message:"brand tidak boleh kosong"`
	Price    string `form:"price"    validate:"required,numeric,gte=0" message:"harga tidak boleh kosong" message_numeric:"harga harus berupa angka" message_gte:"harga tidak boleh negatif"`
	Color    string `form:"color"    validate:"required"               message:"warna tidak boleh kosong"`
	Category string `form:"category" validate:"nullable,in=Baju,Celana,Aksesoris,Jaket" message_in:"kategori tidak valid"`
}

// NewProduct validates fields and returns a Product with a fresh identifier.
func NewProduct(fields Fields) (Product, error) {
	p, err := Product{}.merge(fields)
	if err != nil {
		return Product{}, err
	}
	p.ID = primitive.NewObjectID()
	return p, nil
}

// Apply returns p with the supplied fields replaced, validated as a whole.
// Identity and the garment back-reference are never changed.
func (p Product) Apply(fields Fields) (Product, error) {
	return p.merge(fields)
}

func (p Product) merge(fields Fields) (Product, error) {
	form := p.form()
	for key, val := range fields {
		switch key {
		case "name":
			form.Name = val
		case "brand":
			form.Brand = val
		case "price":
			form.Price = val
		case "color":
			form.Color = val
		case "category":
			form.Category = val
		}
	}

	if errs := validate.Struct(form); validate.HasErrors(errs) {
		return Product{}, fault.Validation("Product", violations(errs))
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	out := p
	out.Name = form.Name
	out.Brand = form.Brand
	out.Price = price
	out.Color = form.Color
	out.Category = Category(form.Category)
	return out, nil
}

func (p Product) form() productForm {
	f := productForm{
		Name:     p.Name,
		Brand:    p.Brand,
		Color:    p.Color,
		Category: string(p.Category),
	}
	if !p.ID.IsZero() {
		f.Price = strconv.FormatFloat(p.Price, 'f', -1, 64)
	}
	return f
}

// ProductDetail is a Product with its owning Garment resolved. Garment is
// nil when the product has none or the reference is dangling.
type ProductDetail struct {
	Product
	Garment *Garment `json:"garment"`
}

func violations(errs validate.Errors) []fault.Violation {
	out := make([]fault.Violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, fault.Violation{Field: e.Field, Message: e.Message})
	}
	return out
}
