package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/baleyard/pkg/database"
	"github.com/ghuser/baleyard/pkg/events"
	baledomain "github.com/ghuser/baleyard/services/bale/domain"
	domainevents "github.com/ghuser/baleyard/services/bale/domain/events"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	"github.com/ghuser/baleyard/services/bale/infrastructure/persistence/postgres/db"
)

// BaleRepository implements repositories.BaleRepository against PostgreSQL.
type BaleRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewBaleRepository returns a BaleRepository backed by the given connection pool
// and event bus. The bus is used to publish placement events after a successful update.
func NewBaleRepository(database *database.Database, bus *events.EventBus) *BaleRepository {
	return &BaleRepository{db: database, bus: bus}
}

// ListByWarehouse returns every bale stored for the warehouse, oldest first.
func (r *BaleRepository) ListByWarehouse(ctx context.Context, warehouseID string) ([]*models.Bale, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListBalesByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("query bales: %w", err)
	}

	bales := make([]*models.Bale, 0, len(rows))
	for _, row := range rows {
		b, err := rowToBale(row)
		if err != nil {
			return nil, err
		}
		bales = append(bales, b)
	}
	return bales, nil
}

// UpdatePlacement persists position and orientation and publishes a placement event
// within the same transaction. Returns ErrBaleNotFound when no row matches.
func (r *BaleRepository) UpdatePlacement(ctx context.Context, warehouseID string, id uuid.UUID, p models.Placement, change repositories.PlacementChange) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		n, err := q.UpdateBalePlacement(ctx, db.UpdateBalePlacementParams{
			ID:          id,
			WarehouseID: warehouseID,
			X:           p.Position.X,
			Y:           p.Position.Y,
			Z:           p.Position.Z,
			Orientation: p.Orientation.String(),
		})
		if err != nil {
			return fmt.Errorf("update bale placement: %w", err)
		}
		if n == 0 {
			return baledomain.ErrBaleNotFound
		}

		if r.bus != nil {
			if err := r.publishPlacement(ctx, tx, warehouseID, id, p, change); err != nil {
				return fmt.Errorf("publish bale %s: %w", change, err)
			}
		}
		return nil
	})
}

// InsertMany seeds bales in a single transaction.
// Returns ErrBaleAlreadyExists on unique constraint violations.
func (r *BaleRepository) InsertMany(ctx context.Context, bales []*models.Bale) error {
	now := time.Now().UTC()
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		for _, b := range bales {
			if err := q.InsertBale(ctx, db.InsertBaleParams{
				ID:              b.ID,
				WarehouseID:     b.WarehouseID,
				CodeNumber:      b.CodeNumber.String(),
				VehicleNumber:   b.VehicleNumber,
				WarehouseNumber: b.WarehouseNumber,
				ArrivalDate:     b.ArrivalDate,
				Supplier:        b.Supplier,
				TotalWeight:     b.TotalWeight,
				BaleCount:       int32(b.BaleCount),
				ContainerNumber: b.ContainerNumber,
				X:               b.Position.X,
				Y:               b.Position.Y,
				Z:               b.Position.Z,
				Orientation:     b.Orientation.String(),
				CreatedAt:       now,
			}); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("%w: %s", baledomain.ErrBaleAlreadyExists, b.ID)
				}
				return fmt.Errorf("insert bale %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

func (r *BaleRepository) publishPlacement(ctx context.Context, tx *sql.Tx, warehouseID string, id uuid.UUID, p models.Placement, change repositories.PlacementChange) error {
	event := domainevents.BalePlacementEvent{
		EventID:     uuid.New(),
		Version:     1,
		BaleID:      id,
		WarehouseID: warehouseID,
		X:           p.Position.X,
		Y:           p.Position.Y,
		Z:           p.Position.Z,
		Orientation: p.Orientation.String(),
		OccurredAt:  time.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(event.EventID, event.Version, event)
	if err != nil {
		return err
	}
	events.InjectTraceContext(ctx, msg)
	pub, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return pub.Publish(topicFor(change), msg)
}

func topicFor(change repositories.PlacementChange) string {
	if change == repositories.ChangeRotated {
		return domainevents.TopicBaleRotated
	}
	return domainevents.TopicBaleMoved
}

// rowToBale maps a db.BaleBale to a domain models.Bale.
func rowToBale(row db.BaleBale) (*models.Bale, error) {
	o, err := models.ParseOrientation(row.Orientation)
	if err != nil {
		return nil, fmt.Errorf("bale %s: %w: %w", row.ID, baledomain.ErrInvalidBale, err)
	}
	b := models.NewBale(row.ID, row.WarehouseID, models.Position{X: row.X, Y: row.Y, Z: row.Z}, o)
	b.CodeNumber = models.CodeNumber(row.CodeNumber)
	b.VehicleNumber = row.VehicleNumber
	b.WarehouseNumber = row.WarehouseNumber
	b.ArrivalDate = row.ArrivalDate
	b.Supplier = row.Supplier
	b.TotalWeight = row.TotalWeight
	b.BaleCount = int(row.BaleCount)
	b.ContainerNumber = row.ContainerNumber
	return b, nil
}
