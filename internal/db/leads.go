package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/leadership-report/internal/types"
)

// CreateLead stores a questionnaire submission and returns its ID.
func (db *DB) CreateLead(ctx context.Context, answers *types.Answers) (uuid.UUID, error) {
	if answers == nil {
		return uuid.Nil, fmt.Errorf("answers are required")
	}
	body, err := json.Marshal(answers)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO leads (email, name, role, answers)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		answers.Email, answers.Name, answers.Role, body,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return id, nil
}

// GetLead retrieves a lead by ID. A missing lead yields nil, nil.
func (db *DB) GetLead(ctx context.Context, id uuid.UUID) (*Lead, error) {
	var lead Lead
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, name, role, answers, created_at FROM leads WHERE id = $1`,
		id,
	).Scan(&lead.ID, &lead.Email, &lead.Name, &lead.Role, &lead.Answers, &lead.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &lead, nil
}
