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

type CommentRepository struct {
	db *database.PostgresDB
}

func NewCommentRepository(db *database.PostgresDB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateComment inserts a comment against a party or a game
func (r *CommentRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, party_id, game_id, user_id, body)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, 0), $4, $5)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.ID,
		comment.PartyID,
		comment.GameID,
		comment.User.ID,
		comment.Text,
	).Scan(&comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetCommentByID returns a single comment with its author
func (r *CommentRepository) GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := `
		SELECT c.id, COALESCE(c.party_id::text, ''), COALESCE(c.game_id, 0),
		       c.body, c.likes, c.created_at,
		       u.id, u.username, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	var comment domain.Comment
	err := r.db.Pool.QueryRow(ctx, query, commentID).Scan(
		&comment.ID,
		&comment.PartyID,
		&comment.GameID,
		&comment.Text,
		&comment.Likes,
		&comment.CreatedAt,
		&comment.User.ID,
		&comment.User.Username,
		&comment.User.Avatar,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListByParty returns every comment attached to a party
func (r *CommentRepository) ListByParty(ctx context.Context, partyID string) ([]domain.Comment, error) {
	return r.list(ctx, `c.party_id = $1`, partyID)
}

// ListByGame returns every comment attached to a game catalog entry
func (r *CommentRepository) ListByGame(ctx context.Context, gameID int64) ([]domain.Comment, error) {
	return r.list(ctx, `c.game_id = $1`, gameID)
}

func (r *CommentRepository) list(ctx context.Context, where string, arg interface{}) ([]domain.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, COALESCE(c.party_id::text, ''), COALESCE(c.game_id, 0),
		       c.body, c.likes, c.created_at,
		       u.id, u.username, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE %s
		ORDER BY c.created_at DESC
	`, where)

	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PartyID,
			&comment.GameID,
			&comment.Text,
			&comment.Likes,
			&comment.CreatedAt,
			&comment.User.ID,
			&comment.User.Username,
			&comment.User.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment; like pairs cascade
func (r *CommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	ct, err := r.db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("comment not found")
	}
	return nil
}

// ToggleLike flips the (user, comment) like pair and adjusts the aggregate
// count in the same transaction. Present pair: removed and decremented;
// absent pair: added and incremented.
func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (*domain.LikeToggleResult, error) {
	result := &domain.LikeToggleResult{CommentID: commentID}

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx,
			`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`,
			commentID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to remove like pair: %w", err)
		}

		if ct.RowsAffected() > 0 {
			result.Liked = false
			err = tx.QueryRow(ctx,
				`UPDATE comments SET likes = likes - 1 WHERE id = $1 RETURNING likes`,
				commentID,
			).Scan(&result.Likes)
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFoundError("comment not found")
			}
			if err != nil {
				return fmt.Errorf("failed to decrement likes: %w", err)
			}
			return nil
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)`,
			commentID, userID,
		)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok {
				switch pgErr.Code {
				case "23505":
					return apperrors.NewConflictError("like already recorded")
				case "23503":
					return apperrors.NewNotFoundError("comment not found")
				}
			}
			return fmt.Errorf("failed to add like pair: %w", err)
		}

		result.Liked = true
		err = tx.QueryRow(ctx,
			`UPDATE comments SET likes = likes + 1 WHERE id = $1 RETURNING likes`,
			commentID,
		).Scan(&result.Likes)
		if err != nil {
			return fmt.Errorf("failed to increment likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListLikedCommentIDs returns every comment id the user has liked. Fetched
// once per view-load so clients do not issue one call per comment.
func (r *CommentRepository) ListLikedCommentIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT comment_id FROM comment_likes WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked comments: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked comment id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read liked comments: %w", err)
	}
	return ids, nil
}
