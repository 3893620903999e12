package database

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestLoadCatalog(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	published := true
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	price := 59.99
	listPrice := 79.99
	stock := 12
	rating := 4.5
	reviews := 100
	sales := 240
	slug := "trail-shoe"
	desc := "Lightweight trail shoe"

	columns := []string{
		"id", "name", "slug", "category", "brand", "description",
		"price", "list_price", "count_in_stock",
		"tags", "colors", "sizes", "images",
		"avg_rating", "num_reviews", "rating_distribution",
		"num_sales", "is_published", "created_at", "updated_at",
	}

	rows := pgxmock.NewRows(columns).
		AddRow(
			"p1", "Trail Shoe", &slug, "Shoes", "Acme", &desc,
			&price, &listPrice, &stock,
			[]string{"outdoor"}, []string{"red"}, []string{"42"}, []string{"p1.jpg"},
			&rating, &reviews, []byte(`[{"rating":5,"count":80},{"rating":4,"count":20}]`),
			&sales, &published, &created, &created,
		).
		AddRow(
			"p2", "Rain Jacket", (*string)(nil), "Jackets", "Acme", (*string)(nil),
			(*float64)(nil), (*float64)(nil), (*int)(nil),
			[]string(nil), []string(nil), []string(nil), []string(nil),
			(*float64)(nil), (*int)(nil), []byte(nil),
			(*int)(nil), (*bool)(nil), (*time.Time)(nil), (*time.Time)(nil),
		)

	mockDB.ExpectQuery("SELECT(.|\n)*FROM products").WillReturnRows(rows)

	catalog, err := LoadCatalog(context.Background(), mockDB, testLogger())
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	p1, ok := catalog.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "trail-shoe", p1.Slug)
	assert.Equal(t, 59.99, p1.Price)
	assert.Equal(t, 100, p1.NumReviews)
	assert.NotNil(t, p1.RatingDistribution)

	p2, ok := catalog.Get("p2")
	require.True(t, ok)
	assert.Empty(t, p2.Slug)
	assert.Zero(t, p2.Price)
	assert.Nil(t, p2.IsPublished)

	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestLoadInteractions(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	ts := time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"user_id", "product_id", "created_at"}).
		AddRow("u1", "p1", ts).
		AddRow("u1", "p2", ts.Add(time.Hour)).
		AddRow("u2", "p1", ts.Add(2*time.Hour))

	mockDB.ExpectQuery("SELECT(.|\n)*FROM interactions").WillReturnRows(rows)

	interactions, err := LoadInteractions(context.Background(), mockDB, testLogger())
	require.NoError(t, err)
	require.Len(t, interactions, 3)
	assert.Equal(t, "u1", interactions[0].UserID)
	assert.Equal(t, "p2", interactions[1].ProductID)

	require.NoError(t, mockDB.ExpectationsWereMet())
}
