package domain

import "fmt"

type View int

const (
	ViewCatalog View = iota
	ViewCart
	ViewCheckout
)

func (v View) String() string {
	switch v {
	case ViewCatalog:
		return "catalog"
	case ViewCart:
		return "cart"
	case ViewCheckout:
		return "checkout"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

func ParseView(s string) (View, error) {
	switch s {
	case "catalog", "home":
		return ViewCatalog, nil
	case "cart":
		return ViewCart, nil
	case "checkout":
		return ViewCheckout, nil
	default:
		return 0, fmt.Errorf("view[%s] is not valid", s)
	}
}
