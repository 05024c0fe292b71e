package planner

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

// PostgresRepository stores plan history in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
	sb   sq.StatementBuilderType
}

func NewPostgresRepository(pool *pgxpool.Pool, log *zap.Logger) *PostgresRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresRepository{
		pool: pool,
		log:  log,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresRepository) SavePlan(ctx context.Context, rec models.PlanRecord) error {
	query, args, err := r.sb.
		Insert("plans").
		Columns("id", "days", "destination", "budget", "preferences", "plan", "created_at").
		Values(rec.ID, rec.Days, rec.Destination, rec.Budget, rec.Preferences, rec.Plan, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	r.log.Debug("Plan saved", zap.String("id", rec.ID.String()))
	return nil
}

func (r *PostgresRepository) RecentPlans(ctx context.Context, limit int) ([]models.PlanRecord, error) {
	query, args, err := r.sb.
		Select("id", "days", "destination", "budget", "preferences", "plan", "created_at").
		From("plans").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.PlanRecord
	for rows.Next() {
		var rec models.PlanRecord
		if err := rows.Scan(&rec.ID, &rec.Days, &rec.Destination, &rec.Budget, &rec.Preferences, &rec.Plan, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}
	return plans, nil
}
