package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"partyup/internal/domain"
	"partyup/pkg/database"
	apperrors "partyup/pkg/errors"
)

type PartyRepository struct {
	db *database.PostgresDB
}

func NewPartyRepository(db *database.PostgresDB) *PartyRepository {
	return &PartyRepository{db: db}
}

// CreateParty inserts a new party and seats the leader on the roster
func (r *PartyRepository) CreateParty(ctx context.Context, party *domain.Party) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO parties (id, name, game_id, leader_id, looking_for, date, details)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			party.ID,
			party.Name,
			party.Game.ID,
			party.Leader.ID,
			party.LookingFor,
			party.Date,
			party.Details,
		).Scan(&party.CreatedAt, &party.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create party: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO party_members (party_id, user_id) VALUES ($1, $2)`,
			party.ID, party.Leader.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to seat party leader: %w", err)
		}
		return nil
	})
}

// GetPartyByID returns a party with its game, leader and full roster
func (r *PartyRepository) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `
		SELECT p.id, p.name, p.looking_for, p.date, p.details, p.created_at, p.updated_at,
		       g.id, g.name, g.cover_url,
		       u.id, u.username, u.avatar
		FROM parties p
		JOIN games g ON g.id = p.game_id
		JOIN users u ON u.id = p.leader_id
		WHERE p.id = $1
	`

	var party domain.Party
	err := r.db.Pool.QueryRow(ctx, query, partyID).Scan(
		&party.ID,
		&party.Name,
		&party.LookingFor,
		&party.Date,
		&party.Details,
		&party.CreatedAt,
		&party.UpdatedAt,
		&party.Game.ID,
		&party.Game.Name,
		&party.Game.CoverURL,
		&party.Leader.ID,
		&party.Leader.Username,
		&party.Leader.Avatar,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}

	members, err := r.loadMembers(ctx, partyID)
	if err != nil {
		return nil, err
	}
	party.Members = members

	return &party, nil
}

// ListParties returns every party with game, leader and roster embedded
func (r *PartyRepository) ListParties(ctx context.Context) ([]domain.Party, error) {
	query := `
		SELECT p.id, p.name, p.looking_for, p.date, p.details, p.created_at, p.updated_at,
		       g.id, g.name, g.cover_url,
		       u.id, u.username, u.avatar
		FROM parties p
		JOIN games g ON g.id = p.game_id
		JOIN users u ON u.id = p.leader_id
		ORDER BY p.date ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	parties := make([]domain.Party, 0)
	index := make(map[string]int)
	ids := make([]string, 0)

	for rows.Next() {
		var party domain.Party
		err := rows.Scan(
			&party.ID,
			&party.Name,
			&party.LookingFor,
			&party.Date,
			&party.Details,
			&party.CreatedAt,
			&party.UpdatedAt,
			&party.Game.ID,
			&party.Game.Name,
			&party.Game.CoverURL,
			&party.Leader.ID,
			&party.Leader.Username,
			&party.Leader.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		party.Members = []domain.User{}
		index[party.ID] = len(parties)
		ids = append(ids, party.ID)
		parties = append(parties, party)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parties: %w", err)
	}

	if len(ids) == 0 {
		return parties, nil
	}

	memberRows, err := r.db.Pool.Query(ctx, `
		SELECT pm.party_id, u.id, u.username, u.avatar
		FROM party_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.party_id = ANY($1)
		ORDER BY pm.joined_at ASC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list party members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var partyID string
		var member domain.User
		if err := memberRows.Scan(&partyID, &member.ID, &member.Username, &member.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan party member: %w", err)
		}
		if i, ok := index[partyID]; ok {
			parties[i].Members = append(parties[i].Members, member)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read party members: %w", err)
	}

	return parties, nil
}

// UpdateParty rewrites the editable party fields. Lowering lookingFor below
// the current net membership is allowed; the raw openings value just goes
// negative and display clamps it.
func (r *PartyRepository) UpdateParty(ctx context.Context, party *domain.Party) error {
	query := `
		UPDATE parties
		SET name = $2, game_id = $3, looking_for = $4, date = $5, details = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		party.ID,
		party.Name,
		party.Game.ID,
		party.LookingFor,
		party.Date,
		party.Details,
	).Scan(&party.UpdatedAt)
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFoundError("party not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update party: %w", err)
	}
	return nil
}

// DeleteParty removes a party; members, comments and likes cascade
func (r *PartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	ct, err := r.db.Pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, partyID)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("party not found")
	}
	return nil
}

// AddMember seats a user on the roster. The party row is locked for the
// duration of the check so two joins racing for the last opening cannot
// both pass the capacity test; the loser gets a capacity error.
func (r *PartyRepository) AddMember(ctx context.Context, partyID, userID string) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var lookingFor int
		err := tx.QueryRow(ctx,
			`SELECT looking_for FROM parties WHERE id = $1 FOR UPDATE`,
			partyID,
		).Scan(&lookingFor)
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFoundError("party not found")
		}
		if err != nil {
			return fmt.Errorf("failed to lock party: %w", err)
		}

		var memberCount int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM party_members WHERE party_id = $1`,
			partyID,
		).Scan(&memberCount)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}

		if memberCount-1 >= lookingFor {
			return apperrors.NewCapacityError("this party is already filled")
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO party_members (party_id, user_id) VALUES ($1, $2)`,
			partyID, userID,
		)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
				return apperrors.NewConflictError("you have already joined this party")
			}
			return fmt.Errorf("failed to add member: %w", err)
		}
		return nil
	})
}

// RemoveMember takes a user off the roster
func (r *PartyRepository) RemoveMember(ctx context.Context, partyID, userID string) error {
	ct, err := r.db.Pool.Exec(ctx,
		`DELETE FROM party_members WHERE party_id = $1 AND user_id = $2`,
		partyID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewValidationError("you are not a member of this party")
	}
	return nil
}

func (r *PartyRepository) loadMembers(ctx context.Context, partyID string) ([]domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT u.id, u.username, u.avatar
		FROM party_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.party_id = $1
		ORDER BY pm.joined_at ASC
	`, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.User, 0)
	for rows.Next() {
		var member domain.User
		if err := rows.Scan(&member.ID, &member.Username, &member.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}
	return members, nil
}
