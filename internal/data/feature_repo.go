package data

import (
	"context"
	"database/sql"
)

// FeatureRepo reads feature grants from PostgreSQL.
// Grants are owned by the entitlement system; this repo is read-only.
type FeatureRepo struct {
	DB *sql.DB
}

// NewFeatureRepo creates a new FeatureRepo.
func NewFeatureRepo(db *sql.DB) *FeatureRepo {
	return &FeatureRepo{DB: db}
}

// HasFeature returns true when the user holds an unexpired grant for the feature.
func (r *FeatureRepo) HasFeature(ctx context.Context, userID, feature string) (bool, error) {
	if userID == "" || feature == "" {
		return false, nil
	}

	var granted bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM user_features
			WHERE user_id = $1
			  AND feature = $2
			  AND (expires_at IS NULL OR expires_at > now())
		)`,
		userID, feature,
	).Scan(&granted)
	if err != nil {
		return false, classifyPGError("find feature grant", err)
	}

	return granted, nil
}
