package profilerepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weather-companion/internal/domain/advisor"
)

// PostgresRepository reads health profiles from Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUserID fetches a profile by user id. Not-found is reported via the
// boolean so callers can fall back to unpersonalized advice.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (advisor.Profile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, health_conditions, weather_sensitivities, allergies
		FROM profiles
		WHERE id = $1
		LIMIT 1
	`, userID)
	if err != nil {
		return advisor.Profile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return advisor.Profile{}, false, rows.Err()
	}

	var profile advisor.Profile
	if err := rows.Scan(&profile.UserID, &profile.HealthConditions, &profile.WeatherSensitivities, &profile.Allergies); err != nil {
		return advisor.Profile{}, false, err
	}
	return profile, true, rows.Err()
}

var _ advisor.ProfileRepository = (*PostgresRepository)(nil)
