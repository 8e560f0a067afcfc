package takeoff

import (
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
)

// ValidateProducts checks that there is something to take off and that the
// representative product exists. Products themselves may be sparse.
func ValidateProducts(products []*model.Product, representative int) error {
	if len(products) == 0 {
		return ierr.NewError("no products").
			WithHint("The product list is empty").
			Mark(ierr.ErrValidation)
	}
	if representative < 0 || representative >= len(products) {
		return ierr.NewErrorf("representative index %d out of range", representative).
			WithHintf("Representative must be between 0 and %d", len(products)-1).
			Mark(ierr.ErrValidation)
	}
	if products[representative] == nil {
		return ierr.NewErrorf("representative product %d is null", representative).
			WithHint("The representative product must be a JSON object").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CompactProducts drops null entries from a decoded product list.
func CompactProducts(products []*model.Product) []*model.Product {
	return lo.Filter(products, func(p *model.Product, _ int) bool {
		return p != nil
	})
}
