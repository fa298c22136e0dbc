package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var rawCatalog []byte

// Store is the in-memory product catalog. It is populated once by Load and
// read-only afterwards, so it is safe to share without locking.
type Store struct {
	products []Product
	byID     map[int]Product
}

// Load parses the embedded catalog data and validates basic shape.
func Load() (*Store, error) {
	return load(rawCatalog)
}

func load(data []byte) (*Store, error) {
	var doc struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	s := &Store{
		products: doc.Products,
		byID:     make(map[int]Product, len(doc.Products)),
	}
	for _, p := range doc.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog: product %q has invalid id %d", p.Name, p.ID)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		if !p.Price.IsPositive() {
			return nil, fmt.Errorf("catalog: product %d has non-positive price", p.ID)
		}
		for _, r := range p.Reviews {
			if r.Rating < 1 || r.Rating > 5 {
				return nil, fmt.Errorf("catalog: product %d review %s rating %d out of range", p.ID, r.ID, r.Rating)
			}
		}
		s.byID[p.ID] = p
	}
	return s, nil
}

// All returns every product in catalog order.
func (s *Store) All() []Product {
	return s.products
}

// ByID looks up a product by its id.
func (s *Store) ByID(id int) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Len reports the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}

// Categories returns "All" followed by the distinct product categories in
// first-appearance order.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{})
	cats := []string{"All"}
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	return cats
}
