package catalog

import "testing"

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name      string
		product   func() *Product
		wantField string
	}{
		{
			name: "valid",
			product: func() *Product {
				return demoProduct("cazuela", "alimentos", true)
			},
		},
		{
			name: "missingName",
			product: func() *Product {
				p := demoProduct("  ", "alimentos", true)
				return p
			},
			wantField: "nombre",
		},
		{
			name: "negativePrice",
			product: func() *Product {
				p := demoProduct("cazuela", "alimentos", true)
				p.Price = -100
				return p
			},
			wantField: "precio",
		},
		{
			name: "missingCategory",
			product: func() *Product {
				return demoProduct("cazuela", "", true)
			},
			wantField: "categoria",
		},
		{
			name: "gatedCategory",
			product: func() *Product {
				return demoProduct("torta", "postres", true)
			},
			wantField: "categoria",
		},
		{
			name: "zeroPriceAllowed",
			product: func() *Product {
				p := demoProduct("agua", "bebidas", true)
				p.Price = 0
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateProduct(tt.product())
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("ValidateProduct() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("ValidateProduct() returned no errors, want error on %q", tt.wantField)
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateProduct() = %v, want error on field %q", errs, tt.wantField)
			}
		})
	}
}
