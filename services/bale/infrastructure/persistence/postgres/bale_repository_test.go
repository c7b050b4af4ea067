package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	baledomain "github.com/ghuser/baleyard/services/bale/domain"
	domainevents "github.com/ghuser/baleyard/services/bale/domain/events"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	"github.com/ghuser/baleyard/services/bale/infrastructure/persistence/postgres/db"
)

func TestRowToBale(t *testing.T) {
	row := db.BaleBale{
		ID:              uuid.New(),
		WarehouseID:     "WH-1",
		CodeNumber:      "AB1-001",
		VehicleNumber:   "V1",
		WarehouseNumber: "7",
		ArrivalDate:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Supplier:        "Agro",
		TotalWeight:     412.5,
		BaleCount:       2,
		ContainerNumber: "C1",
		X:               7, Y: 4.5, Z: -4,
		Orientation: "vertical",
	}

	b, err := rowToBale(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != row.ID || b.WarehouseID != "WH-1" {
		t.Fatalf("identity not mapped: %+v", b)
	}
	if b.Position != (models.Position{X: 7, Y: 4.5, Z: -4}) {
		t.Fatalf("position: got %+v", b.Position)
	}
	if b.Orientation != models.Vertical {
		t.Fatalf("orientation: got %v", b.Orientation)
	}
	if b.CodeNumber != "AB1-001" || b.BaleCount != 2 || b.TotalWeight != 412.5 {
		t.Fatalf("attributes not mapped: %+v", b)
	}
	if !b.Visible {
		t.Fatal("loaded bales must start visible")
	}
}

func TestRowToBale_BadOrientation(t *testing.T) {
	_, err := rowToBale(db.BaleBale{ID: uuid.New(), Orientation: "sideways"})
	if !errors.Is(err, baledomain.ErrInvalidBale) {
		t.Fatalf("expected ErrInvalidBale, got %v", err)
	}
}

func TestTopicFor(t *testing.T) {
	if got := topicFor(repositories.ChangeMoved); got != domainevents.TopicBaleMoved {
		t.Errorf("moved: got %q", got)
	}
	if got := topicFor(repositories.ChangeRotated); got != domainevents.TopicBaleRotated {
		t.Errorf("rotated: got %q", got)
	}
}
