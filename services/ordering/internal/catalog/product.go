package catalog

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Product is a catalog entry. Price is stored in whole currency units so
// totals never go through floating point.
type Product struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"nombre" bson:"nombre"`
	Description string    `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	Price       int64     `json:"precio" bson:"precio"`
	Category    string    `json:"categoria" bson:"categoria"`
	Available   bool      `json:"disponible" bson:"disponible"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *Product) GetID() uuid.UUID {
	return p.ID
}

func (p *Product) ResourceType() string {
	return "product"
}

func (p *Product) SetID(id uuid.UUID) {
	p.ID = id
}

func NewProduct() *Product {
	return &Product{
		ID:        apt.GenerateNewID(),
		Available: true,
	}
}

func (p *Product) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = apt.GenerateNewID()
	}
}

func (p *Product) BeforeCreate() {
	p.EnsureID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (p *Product) BeforeUpdate() {
	p.UpdatedAt = time.Now()
}
