package order

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/casinoeats/casinoeats/pkg/enums/orderstatus"
)

// LineItem is a snapshot of a cart line at submission time. Price is frozen
// here; later catalog edits never touch a submitted order.
type LineItem struct {
	ProductID uuid.UUID `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	UnitPrice int64     `json:"price" bson:"price"`
	Quantity  int       `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID          uuid.UUID  `json:"id" bson:"_id"`
	TableNumber int        `json:"numero_mesa" bson:"numero_mesa"`
	Items       []LineItem `json:"productos" bson:"productos"`
	Total       int64      `json:"total" bson:"total"`
	Status      string     `json:"estado" bson:"estado"`
	Note        string     `json:"nota,omitempty" bson:"nota,omitempty"`
	SubmittedAt time.Time  `json:"fecha_pedido" bson:"fecha_pedido"`
	DeliveredAt *time.Time `json:"fecha_entregado,omitempty" bson:"fecha_entregado,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: orderstatus.Statuses.Pending.Name,
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	now := time.Now()
	if o.SubmittedAt.IsZero() {
		o.SubmittedAt = now
	}
	o.CreatedAt = now
	o.UpdatedAt = now
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// ComputeTotal derives the total from the line items. The stored Total is a
// convenience copy for queries; this is the source of truth.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// SetStatus applies a target status. Moving to Entregado stamps DeliveredAt;
// moving anywhere else leaves a previously stamped DeliveredAt untouched.
func (o *Order) SetStatus(s orderstatus.Status) {
	o.Status = s.Name
	if s.Name == orderstatus.Statuses.Delivered.Name {
		now := time.Now()
		o.DeliveredAt = &now
	}
	o.UpdatedAt = time.Now()
}

func (o *Order) MarkPending() {
	o.SetStatus(orderstatus.Statuses.Pending)
}

func (o *Order) MarkInPreparation() {
	o.SetStatus(orderstatus.Statuses.InPreparation)
}

func (o *Order) MarkReady() {
	o.SetStatus(orderstatus.Statuses.Ready)
}

func (o *Order) MarkDelivered() {
	o.SetStatus(orderstatus.Statuses.Delivered)
}

func (o *Order) IsDelivered() bool {
	return o.Status == orderstatus.Statuses.Delivered.Name
}
