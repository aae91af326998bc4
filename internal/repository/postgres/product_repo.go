package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flipgrid/internal/domain"
	"flipgrid/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a PostgreSQL-backed RecordSink writing packaged
// products and fresh produce to their own tables.
func NewProductRepo(db *sqlx.DB) port.RecordSink {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, record *domain.ProductRecord) error {
	switch record.Category {
	case domain.CategoryPackaged:
		return r.createPackaged(ctx, record.Packaged)
	case domain.CategoryFreshProduce:
		return r.createFresh(ctx, record.Fresh)
	}
	return fmt.Errorf("productRepo.Create: unknown category %q", record.Category)
}

func (r *productRepo) createPackaged(ctx context.Context, p *domain.PackagedProduct) error {
	if p == nil {
		return fmt.Errorf("productRepo.createPackaged: nil record")
	}
	p.ID = uuid.New()
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	// sl_no restarts at 1 on an empty table; the subquery keeps the counter
	// monotonic without a sequence so manual truncation resets it.
	query := `INSERT INTO packaged_products (uuid, sl_no, brand, mrp, manufacturing_date,
		expiry_date, count, expired, expected_life_span, timestamp)
		VALUES ($1, (SELECT COALESCE(MAX(sl_no), 0) + 1 FROM packaged_products),
			$2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING sl_no`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Brand, p.MRP, p.ManufacturingDate, p.ExpiryDate,
		p.Count, p.Expired, p.ExpectedLifeSpanDays, p.Timestamp).Scan(&p.SlNo)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("productRepo.createPackaged: %w", err)
	}
	return nil
}

func (r *productRepo) createFresh(ctx context.Context, f *domain.FreshProduce) error {
	if f == nil {
		return fmt.Errorf("productRepo.createFresh: nil record")
	}
	f.ID = uuid.New()
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO fresh_produce (uuid, sl_no, produce, freshness_score,
		expected_life_span, timestamp)
		VALUES ($1, (SELECT COALESCE(MAX(sl_no), 0) + 1 FROM fresh_produce),
			$2, $3, $4, $5)
		RETURNING sl_no`

	err := r.db.QueryRowxContext(ctx, query,
		f.ID, f.Produce, f.FreshnessScore, f.ExpectedLifeSpanDays, f.Timestamp).Scan(&f.SlNo)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("productRepo.createFresh: %w", err)
	}
	return nil
}
