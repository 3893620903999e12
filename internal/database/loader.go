package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/pkg/models"
)

// Querier is the slice of pgxpool.Pool the loader needs; tests substitute a
// pgxmock pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

const catalogQuery = `
	SELECT
		id, name, slug, category, brand, description,
		price, list_price, count_in_stock,
		tags, colors, sizes, images,
		avg_rating, num_reviews, rating_distribution,
		num_sales, is_published, created_at, updated_at
	FROM products
	ORDER BY id`

const interactionsQuery = `
	SELECT user_id, product_id, created_at
	FROM interactions
	ORDER BY created_at, user_id, product_id`

// LoadCatalog materializes the product catalog into a read-only in-memory
// table. Nullable display columns are tolerated here and defaulted later
// during enrichment.
func LoadCatalog(ctx context.Context, q Querier, logger *logrus.Logger) (*models.Catalog, error) {
	rows, err := q.Query(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p            models.Product
			slug         *string
			description  *string
			price        *float64
			listPrice    *float64
			countInStock *int
			avgRating    *float64
			numReviews   *int
			distribution []byte
			numSales     *int
			createdAt    *time.Time
			updatedAt    *time.Time
		)

		if err := rows.Scan(
			&p.ID, &p.Name, &slug, &p.Category, &p.Brand, &description,
			&price, &listPrice, &countInStock,
			&p.Tags, &p.Colors, &p.Sizes, &p.Images,
			&avgRating, &numReviews, &distribution,
			&numSales, &p.IsPublished, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		if slug != nil {
			p.Slug = *slug
		}
		if description != nil {
			p.Description = *description
		}
		if price != nil {
			p.Price = *price
		}
		if listPrice != nil {
			p.ListPrice = *listPrice
		}
		if countInStock != nil {
			p.CountInStock = *countInStock
		}
		if avgRating != nil {
			p.AvgRating = *avgRating
		}
		if numReviews != nil {
			p.NumReviews = *numReviews
		}
		if numSales != nil {
			p.NumSales = *numSales
		}
		if createdAt != nil {
			p.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			p.UpdatedAt = *updatedAt
		}
		if len(distribution) > 0 {
			var raw interface{}
			if err := json.Unmarshal(distribution, &raw); err != nil {
				logger.WithFields(logrus.Fields{
					"product_id": p.ID,
					"error":      err,
				}).Warn("Unreadable rating distribution, leaving empty")
			} else {
				p.RatingDistribution = raw
			}
		}

		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}

	catalog := models.NewCatalog(products)
	logger.WithField("products", catalog.Len()).Info("Catalog loaded")
	return catalog, nil
}

// LoadInteractions reads the full interaction log. The log is consumed once
// to build the interaction index and never queried again.
func LoadInteractions(ctx context.Context, q Querier, logger *logrus.Logger) ([]models.Interaction, error) {
	rows, err := q.Query(ctx, interactionsQuery)
	if err != nil {
		return nil, fmt.Errorf("interactions query failed: %w", err)
	}
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(&in.UserID, &in.ProductID, &in.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("interaction row iteration failed: %w", err)
	}

	logger.WithField("interactions", len(interactions)).Info("Interaction log loaded")
	return interactions, nil
}
