package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductNotFound = errors.New("product not found")

// Repository persists catalog rows keyed by (external_id, company).
// external_id alone is not globally unique, which is why rows carry a
// synthetic uuid primary key.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// looks up a product by its site-local id and company
func (r *Repository) FindByKey(ctx context.Context, externalID, company string) (*Product, error) {
	row := r.db.QueryRow(ctx, queryFindByKey, externalID, company)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to find product %s/%s: %w", company, externalID, err)
	}

	return product, nil
}

// inserts a new row or refreshes an existing one. A nil embedding never
// overwrites a stored vector.
func (r *Repository) Upsert(ctx context.Context, params UpsertParams) error {
	_, err := r.db.Exec(ctx, queryUpsert,
		uuid.NewString(),
		params.ExternalID,
		params.Name,
		params.Description,
		params.Price,
		params.Condition,
		params.ImageURL,
		params.ProductURL,
		params.Category,
		params.Availability,
		params.Company,
		params.Metadata,
		params.SearchTerms,
		params.Embedding,
		params.IsTestData,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert product %s/%s: %w", params.Company, params.ExternalID, err)
	}

	return nil
}

// returns non-test products ordered by most recently updated, with total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Product, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	list, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// fetches a product by its surrogate primary key
func (r *Repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRow(ctx, queryGetByID, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	return product, nil
}

// returns rows for a company whose external id was not observed in the
// latest scrape, used by the reconciler to find delisted products
func (r *Repository) FindMissing(ctx context.Context, company string, isTestData bool, seenIDs []string) ([]Product, error) {
	if seenIDs == nil {
		seenIDs = []string{}
	}

	rows, err := r.db.Query(ctx, queryFindMissing, company, isTestData, seenIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find missing products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// removes a product by its key
func (r *Repository) DeleteByKey(ctx context.Context, externalID, company string) error {
	_, err := r.db.Exec(ctx, queryDeleteByKey, externalID, company)
	if err != nil {
		return fmt.Errorf("failed to delete product %s/%s: %w", company, externalID, err)
	}

	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product

	err := row.Scan(
		&p.ID,
		&p.ExternalID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Condition,
		&p.ImageURL,
		&p.ProductURL,
		&p.Category,
		&p.Availability,
		&p.Company,
		&p.Metadata,
		&p.SearchTerms,
		&p.IsTestData,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var list []Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		list = append(list, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return list, nil
}
