package validate_test

import (
	"math"
	"testing"

	"github.com/shashiranjanraj/shopapp/pkg/validate"
)

type productInput struct {
	Name     string `form:"name"     validate:"required" message:"nama tidak boleh kosong"`
	Brand    string `form:"brand"    validate:"required" message:"brand tidak boleh kosong"`
	Price    string `form:"price"    validate:"required,numeric,gte=0" message:"harga tidak boleh kosong"`
	Color    string `form:"color"    validate:"required" message:"warna tidak boleh kosong"`
	Category string `form:"category" validate:"nullable,in=Baju,Celana,Aksesoris,Jaket"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:     "Kaos",
		Brand:    "Lokal",
		Price:    "50000",
		Color:    "Hitam",
		Category: "", // nullable
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredUsesMessageTagInFieldOrder(t *testing.T) {
	errs := validate.Struct(productInput{Brand: "Lokal"})
	want := []string{"nama tidak boleh kosong", "harga tidak boleh kosong", "warna tidak boleh kosong"}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got: %v", len(want), errs)
	}
	for i, msg := range want {
		if errs[i].Message != msg {
			t.Errorf("error %d: expected %q, got %q", i, msg, errs[i].Message)
		}
		if errs[i].Rule != "required" {
			t.Errorf("error %d: expected required rule, got %q", i, errs[i].Rule)
		}
	}
}

func TestWhitespaceIsEmpty(t *testing.T) {
	errs := validate.Struct(productInput{Name: "   ", Brand: "b", Price: "1", Color: "c"})
	if !failed(errs, "name") {
		t.Errorf("expected blank name to fail, got: %v", errs)
	}
}

func TestNumericPrice(t *testing.T) {
	base := productInput{Name: "n", Brand: "b", Color: "c"}

	base.Price = "abc"
	errs := validate.Struct(base)
	if !failed(errs, "price") || errs[0].Rule != "numeric" {
		t.Errorf("expected numeric failure, got: %v", errs)
	}
	if errs[0].Message == "harga tidak boleh kosong" {
		t.Error("message tag must only replace the required rule")
	}

	base.Price = "-1"
	if errs := validate.Struct(base); !failed(errs, "price") {
		t.Error("expected negative price to fail")
	}

	base.Price = "0"
	if errs := validate.Struct(base); validate.HasErrors(errs) {
		t.Errorf("expected zero price to pass, got: %v", errs)
	}

	base.Price = "12.5"
	if errs := validate.Struct(base); validate.HasErrors(errs) {
		t.Errorf("expected decimal price to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	base := productInput{Name: "n", Brand: "b", Price: "1", Color: "c"}

	base.Category = "Celana"
	if errs := validate.Struct(base); validate.HasErrors(errs) {
		t.Errorf("expected Celana to pass, got: %v", errs)
	}

	base.Category = "Sepatu"
	if errs := validate.Struct(base); !failed(errs, "category") {
		t.Error("expected Sepatu to fail")
	}
}

func TestNumericBoundsOnInts(t *testing.T) {
	type in struct {
		Qty int `json:"qty" validate:"required,gte=1,lte=10"`
	}
	if errs := validate.Struct(in{Qty: 11}); !failed(errs, "qty") {
		t.Error("expected qty > 10 to fail")
	}
	if errs := validate.Struct(in{Qty: 5}); validate.HasErrors(errs) {
		t.Errorf("expected qty 5 to pass, got: %v", errs)
	}
}

func TestMinMaxLength(t *testing.T) {
	type in struct {
		Contact string `json:"contact" validate:"required,min=3,max=5"`
	}
	if errs := validate.Struct(in{Contact: "ab"}); !failed(errs, "contact") {
		t.Error("expected short contact to fail")
	}
	if errs := validate.Struct(in{Contact: "abcdef"}); !failed(errs, "contact") {
		t.Error("expected long contact to fail")
	}
	if errs := validate.Struct(&in{Contact: "abcd"}); validate.HasErrors(errs) {
		t.Errorf("expected pointer input to validate, got: %v", errs)
	}
}

func TestNonFiniteIsNotNumeric(t *testing.T) {
	base := productInput{Name: "n", Brand: "b", Color: "c"}
	for _, price := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity", "1e400"} {
		base.Price = price
		errs := validate.Struct(base)
		if !failed(errs, "price") || errs[0].Rule != "numeric" {
			t.Errorf("price %q: expected numeric failure, got: %v", price, errs)
		}
	}

	type in struct {
		Weight float64 `json:"weight" validate:"numeric,gte=0"`
	}
	if errs := validate.Struct(in{Weight: math.NaN()}); !failed(errs, "weight") {
		t.Error("expected NaN float to fail")
	}
	if errs := validate.Struct(in{Weight: math.Inf(1)}); !failed(errs, "weight") {
		t.Error("expected +Inf float to fail")
	}
}

func TestPerRuleMessage(t *testing.T) {
	type in struct {
		Price string `form:"price" validate:"required,numeric,gte=0" message:"harga tidak boleh kosong" message_numeric:"harga harus berupa angka" message_gte:"harga tidak boleh negatif"`
	}
	want := map[string]string{
		"":   "harga tidak boleh kosong",
		"x":  "harga harus berupa angka",
		"-5": "harga tidak boleh negatif",
	}
	for price, msg := range want {
		errs := validate.Struct(in{Price: price})
		if len(errs) != 1 || errs[0].Message != msg {
			t.Errorf("price %q: expected %q, got: %v", price, msg, errs)
		}
	}
}

func failed(errs validate.Errors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}
