package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopapp/app/models"
	"github.com/shashiranjanraj/shopapp/pkg/fault"
)

func validProductFields() models.Fields {
	return models.Fields{
		"name":     "Shirt",
		"brand":    "X",
		"price":    "50000",
		"color":    "Blue",
		"category": "Baju",
	}
}

func TestNewProduct(t *testing.T) {
	p, err := models.NewProduct(validProductFields())
	require.NoError(t, err)

	assert.False(t, p.ID.IsZero())
	assert.Equal(t, "Shirt", p.Name)
	assert.Equal(t, "X", p.Brand)
	assert.Equal(t, 50000.0, p.Price)
	assert.Equal(t, "Blue", p.Color)
	assert.Equal(t, models.CategoryBaju, p.Category)
	assert.Nil(t, p.Garment)
}

func TestNewProductWithoutCategory(t *testing.T) {
	fields := validProductFields()
	delete(fields, "category")

	p, err := models.NewProduct(fields)
	require.NoError(t, err)
	assert.Equal(t, models.Category(""), p.Category)
}

func TestNewProductListsEveryViolationInOrder(t *testing.T) {
	_, err := models.NewProduct(models.Fields{"brand": "X", "category": "Sepatu"})

	var vf *fault.ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"name", "price", "color", "category"}, vf.Fields())
	assert.Equal(t, "nama tidak boleh kosong", vf.Violations[0].Message)
	assert.Equal(t, "harga tidak boleh kosong", vf.Violations[1].Message)
	assert.Equal(t, "warna tidak boleh kosong", vf.Violations[2].Message)
}

func TestNewProductRejectsBadPrice(t *testing.T) {
	cases := map[string]string{
		"abc":   "harga harus berupa angka",
		"NaN":   "harga harus berupa angka",
		"Inf":   "harga harus berupa angka",
		"-Inf":  "harga harus berupa angka",
		"1e400": "harga harus berupa angka",
		"-1":    "harga tidak boleh negatif",
	}
	for price, msg := range cases {
		fields := validProductFields()
		fields["price"] = price
		_, err := models.NewProduct(fields)

		var vf *fault.ValidationFailed
		require.True(t, errors.As(err, &vf), price)
		assert.Equal(t, []string{"price"}, vf.Fields(), price)
		assert.Equal(t, msg, vf.Violations[0].Message, price)
	}

	fields := validProductFields()
	fields["price"] = "0"
	p, err := models.NewProduct(fields)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Price)
}

func TestNewProductRejectsUnknownCategoryInIndonesian(t *testing.T) {
	fields := validProductFields()
	fields["category"] = "Sepatu"
	_, err := models.NewProduct(fields)

	var vf *fault.ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, "kategori tidak valid", vf.Violations[0].Message)
}

func TestApplyRejectsNonFinitePrice(t *testing.T) {
	p, err := models.NewProduct(validProductFields())
	require.NoError(t, err)

	_, err = p.Apply(models.Fields{"price": "NaN"})
	var vf *fault.ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"price"}, vf.Fields())
}

func TestProductApplyMergesSuppliedFields(t *testing.T) {
	p, err := models.NewProduct(validProductFields())
	require.NoError(t, err)
	owner := primitive.NewObjectID()
	p.Garment = &owner

	updated, err := p.Apply(models.Fields{"color": "Red", "price": "0"})
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, &owner, updated.Garment)
	assert.Equal(t, "Red", updated.Color)
	assert.Equal(t, 0.0, updated.Price)
	assert.Equal(t, "Shirt", updated.Name)

	// price 0 stays present on a later update that does not touch it
	again, err := updated.Apply(models.Fields{"name": "Kaos"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, again.Price)
}

func TestProductApplyRejectsEmptiedField(t *testing.T) {
	p, err := models.NewProduct(validProductFields())
	require.NoError(t, err)

	_, err = p.Apply(models.Fields{"brand": ""})
	var vf *fault.ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"brand"}, vf.Fields())
	assert.Equal(t, "brand tidak boleh kosong", vf.Message())
}

func TestProductApplyRejectsUnknownCategory(t *testing.T) {
	p, err := models.NewProduct(validProductFields())
	require.NoError(t, err)

	_, err = p.Apply(models.Fields{"category": "Topi"})
	var vf *fault.ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"category"}, vf.Fields())
}

func TestNewGarment(t *testing.T) {
	g, err := models.NewGarment(models.Fields{"name": "Pabrik A", "location": "Bandung", "contact": "0812"})
	require.NoError(t, err)
	assert.False(t, g.ID.IsZero())
	assert.Empty(t, g.Products)
	assert.NotNil(t, g.Products)

	_, err = models.NewGarment(models.Fields{"name": "Pabrik A"})
	var vf *fault.ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, "lokasi tidak boleh kosong, kontak tidak boleh kosong", vf.Message())
}

func TestGarmentProductList(t *testing.T) {
	g, err := models.NewGarment(models.Fields{"name": "A", "location": "B", "contact": "C"})
	require.NoError(t, err)

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	g2 := g.AddProduct(a).AddProduct(b).AddProduct(a)
	assert.Equal(t, []primitive.ObjectID{a, b, a}, g2.Products)
	assert.Empty(t, g.Products, "AddProduct must not mutate the receiver")

	g3, found := g2.RemoveProduct(a)
	assert.True(t, found)
	assert.Equal(t, []primitive.ObjectID{b}, g3.Products)

	_, found = g3.RemoveProduct(a)
	assert.False(t, found)
}

func TestGarmentApplyKeepsProducts(t *testing.T) {
	g, err := models.NewGarment(models.Fields{"name": "A", "location": "B", "contact": "C"})
	require.NoError(t, err)
	g = g.AddProduct(primitive.NewObjectID())

	updated, err := g.Apply(models.Fields{"location": "Jakarta", "products": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Jakarta", updated.Location)
	assert.Equal(t, g.Products, updated.Products)
}

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 50.000,00", models.Rupiah(50000))
	assert.Equal(t, "Rp 1.250.000,50", models.Rupiah(1250000.5))
	assert.Equal(t, "Rp 0,00", models.Rupiah(0))
}
