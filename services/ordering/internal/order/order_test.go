package order

import (
	"testing"
	"time"

	"github.com/casinoeats/casinoeats/pkg/enums/orderstatus"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  int64
	}{
		{
			name: "single item",
			items: []LineItem{
				{Name: "Café americano", UnitPrice: 2500, Quantity: 1},
			},
			want: 2500,
		},
		{
			name: "multiplies quantity",
			items: []LineItem{
				{Name: "Empanada de pino", UnitPrice: 3200, Quantity: 3},
			},
			want: 9600,
		},
		{
			name: "sums across items",
			items: []LineItem{
				{Name: "Empanada de pino", UnitPrice: 3200, Quantity: 2},
				{Name: "Jugo natural", UnitPrice: 2800, Quantity: 1},
			},
			want: 9200,
		},
		{
			name:  "empty order",
			items: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrder()
			o.Items = tt.items
			if got := o.ComputeTotal(); got != tt.want {
				t.Errorf("ComputeTotal() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewOrderStartsPending(t *testing.T) {
	o := NewOrder()
	if o.Status != orderstatus.Statuses.Pending.Name {
		t.Errorf("expected new order status %q, got %q", orderstatus.Statuses.Pending.Name, o.Status)
	}
	if o.DeliveredAt != nil {
		t.Error("expected new order to have no delivery timestamp")
	}
}

func TestMarkDeliveredStampsTimestamp(t *testing.T) {
	o := NewOrder()
	o.MarkInPreparation()
	o.MarkReady()

	if o.DeliveredAt != nil {
		t.Fatal("delivery timestamp set before delivery")
	}

	before := time.Now()
	o.MarkDelivered()

	if o.Status != orderstatus.Statuses.Delivered.Name {
		t.Errorf("expected status %q, got %q", orderstatus.Statuses.Delivered.Name, o.Status)
	}
	if o.DeliveredAt == nil {
		t.Fatal("expected delivery timestamp to be set")
	}
	if o.DeliveredAt.Before(before) {
		t.Error("delivery timestamp predates the transition")
	}
}

func TestDeliveredAtSurvivesLaterTransitions(t *testing.T) {
	o := NewOrder()
	o.MarkDelivered()

	stamped := o.DeliveredAt
	if stamped == nil {
		t.Fatal("expected delivery timestamp to be set")
	}

	// Corrections move the order back without erasing delivery history.
	o.MarkReady()

	if o.DeliveredAt == nil {
		t.Fatal("delivery timestamp cleared by later transition")
	}
	if !o.DeliveredAt.Equal(*stamped) {
		t.Error("delivery timestamp changed by later transition")
	}
}

func TestBeforeCreateSetsSubmittedAt(t *testing.T) {
	o := NewOrder()
	o.BeforeCreate()

	if o.SubmittedAt.IsZero() {
		t.Error("expected submission timestamp to be set")
	}
	if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
		t.Error("expected audit timestamps to be set")
	}
}
