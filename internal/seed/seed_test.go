package seed

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

func TestSampleDataIsConsistent(t *testing.T) {
	c := qt.New(t)

	categories := map[string]bool{}
	for _, name := range sampleCategories {
		categories[name] = true
	}
	products := map[string]bool{}
	skus := map[string]bool{}
	for _, p := range sampleProducts {
		c.Assert(categories[p.category], qt.IsTrue, qt.Commentf("product %s", p.sku))
		c.Assert(skus[p.sku], qt.IsFalse, qt.Commentf("duplicate sku %s", p.sku))
		skus[p.sku] = true
		products[p.name] = true
	}
	for _, o := range sampleOrders {
		c.Assert(products[o.product], qt.IsTrue, qt.Commentf("order for %s", o.product))
		c.Assert(o.status.IsValid(), qt.IsTrue)
	}
	for _, f := range sampleForecasts {
		c.Assert(categories[f.category], qt.IsTrue)
	}
	for _, f := range sampleFeedbackRows {
		for _, r := range []int{f.rating, f.delivery, f.product} {
			c.Assert(r >= 1 && r <= 5, qt.IsTrue)
		}
	}
}

func TestSampleDataHasLowStock(t *testing.T) {
	c := qt.New(t)
	low := 0
	for _, p := range sampleProducts {
		if p.quantity < models.DefaultMinStockLevel {
			low++
		}
	}
	c.Assert(low, qt.Equals, 4)
}

func TestValidateUser(t *testing.T) {
	c := qt.New(t)
	c.Assert(ValidateUser(models.User{Email: "a@b.c", Password: "pw"}), qt.IsNil)
	c.Assert(ValidateUser(models.User{Email: "a@b.c", Password: "pw", UserType: models.UserTypeAdmin}), qt.IsNil)
	c.Assert(ValidateUser(models.User{}), qt.ErrorMatches, "missing required fields: email, password")
	c.Assert(ValidateUser(models.User{Email: "a@b.c", Password: "pw", UserType: "root"}), qt.ErrorMatches, `invalid user type "root"`)
}

func TestResultString(t *testing.T) {
	c := qt.New(t)
	c.Assert(Result{Skipped: true}.String(), qt.Equals, "seed skipped: products already present")
	c.Assert(Result{Categories: 4, Products: 9, Orders: 6, Forecasts: 4, Feedback: 2, Users: 1}.String(),
		qt.Equals, "seeded 4 categories, 9 products, 6 orders, 4 forecasts, 2 feedback, 1 users")
}
