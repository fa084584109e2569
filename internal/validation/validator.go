package validation

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator: field errors are reported by their
// json names and struct-level validation covers the Number fields.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(menuItemStructValidation, MenuItemRequest{})
	v.RegisterStructValidation(orderItemStructValidation, OrderItemRequest{})
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})
	v.RegisterStructValidation(createReservationStructValidation, CreateReservationRequest{})

	return v
}

func menuItemStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(MenuItemRequest)
	checkFloat(sl, req.Price, "price", "Price", 0)
}

func orderItemStructValidation(sl validatorv10.StructLevel) {
	item := sl.Current().Interface().(OrderItemRequest)
	checkFloat(sl, item.Price, "price", "Price", 0)
	checkInt(sl, item.Quantity, "quantity", "Quantity", 1)
}

func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)
	checkFloat(sl, req.TotalAmount, "totalAmount", "TotalAmount", 0)
}

func createReservationStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateReservationRequest)
	checkInt(sl, req.NumberOfGuests, "numberOfGuests", "NumberOfGuests", 1)
}

func checkFloat(sl validatorv10.StructLevel, n Number, field, structField string, min float64) {
	if !n.Present() {
		sl.ReportError(n, field, structField, "required", "")
		return
	}
	f, ok := n.Float()
	if !ok {
		sl.ReportError(n, field, structField, "numeric", "")
		return
	}
	if f < min {
		sl.ReportError(n, field, structField, "gte", "")
	}
}

func checkInt(sl validatorv10.StructLevel, n Number, field, structField string, min int) {
	if !n.Present() {
		sl.ReportError(n, field, structField, "required", "")
		return
	}
	i, ok := n.Int()
	if !ok {
		sl.ReportError(n, field, structField, "number", "")
		return
	}
	if i < min {
		sl.ReportError(n, field, structField, "min", "")
	}
}
