package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/cozyshare/backend/internal/models"
)

type NoticeRepository struct {
	db *pgxpool.Pool
}

// NewNoticeRepository creates the notice board repository.
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const noticeColumns = `id, household_code, title, message, created_by, created_at, updated_at`

func scanNotice(row pgx.Row) (models.Notice, error) {
	var notice models.Notice
	err := row.Scan(
		&notice.ID, &notice.HouseholdCode, &notice.Title, &notice.Message,
		&notice.CreatedBy, &notice.CreatedAt, &notice.UpdatedAt,
	)
	return notice, err
}

// ListByHousehold returns a household's notices newest first, with likes and
// comments attached.
func (r *NoticeRepository) ListByHousehold(ctx context.Context, householdCode string) ([]models.Notice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+noticeColumns+`
		 FROM notices
		 WHERE household_code = $1
		 ORDER BY created_at DESC`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := make([]models.Notice, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notice.Likes = []string{}
		notice.Comments = []models.NoticeComment{}
		index[notice.ID] = len(notices)
		notices = append(notices, notice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(notices) == 0 {
		return notices, nil
	}

	likeRows, err := r.db.Query(ctx,
		`SELECT l.notice_id, l.member
		 FROM notice_likes l
		 JOIN notices n ON n.id = l.notice_id
		 WHERE n.household_code = $1
		 ORDER BY l.created_at`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var noticeID uuid.UUID
		var member string
		if err := likeRows.Scan(&noticeID, &member); err != nil {
			return nil, err
		}
		if i, ok := index[noticeID]; ok {
			notices[i].Likes = append(notices[i].Likes, member)
		}
	}
	if err := likeRows.Err(); err != nil {
		return nil, err
	}

	commentRows, err := r.db.Query(ctx,
		`SELECT c.id, c.notice_id, c.body, c.author, c.created_at
		 FROM notice_comments c
		 JOIN notices n ON n.id = c.notice_id
		 WHERE n.household_code = $1
		 ORDER BY c.created_at`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var comment models.NoticeComment
		if err := commentRows.Scan(&comment.ID, &comment.NoticeID, &comment.Text, &comment.Author, &comment.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[comment.NoticeID]; ok {
			notices[i].Comments = append(notices[i].Comments, comment)
		}
	}
	if err := commentRows.Err(); err != nil {
		return nil, err
	}

	return notices, nil
}

// GetByID returns one notice with likes and comments attached.
func (r *NoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Notice, error) {
	return getNotice(ctx, r.db, id)
}

// Create inserts a notice.
func (r *NoticeRepository) Create(ctx context.Context, notice models.Notice) (models.Notice, error) {
	created, err := scanNotice(r.db.QueryRow(ctx,
		`INSERT INTO notices (household_code, title, message, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+noticeColumns,
		notice.HouseholdCode, notice.Title, notice.Message, notice.CreatedBy,
	))
	if err != nil {
		return created, err
	}

	created.Likes = []string{}
	created.Comments = []models.NoticeComment{}
	return created, nil
}

// Update edits the title and/or message of a notice. Nil fields are left
// untouched.
func (r *NoticeRepository) Update(ctx context.Context, id uuid.UUID, title, message *string) (models.Notice, error) {
	_, err := scanNotice(r.db.QueryRow(ctx,
		`UPDATE notices
		 SET title = COALESCE($2, title),
		     message = COALESCE($3, message),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+noticeColumns,
		id, title, message,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Notice{}, ErrNotFound
		}
		return models.Notice{}, err
	}

	return getNotice(ctx, r.db, id)
}

// ToggleLike adds the member to the notice's like set, or removes them if
// already present. The row lock keeps two racing toggles from double-adding.
func (r *NoticeRepository) ToggleLike(ctx context.Context, id uuid.UUID, member string) (models.Notice, error) {
	var notice models.Notice

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return notice, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := scanNotice(tx.QueryRow(ctx,
		`SELECT `+noticeColumns+` FROM notices WHERE id = $1 FOR UPDATE`,
		id,
	)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notice, ErrNotFound
		}
		return notice, err
	}

	cmd, err := tx.Exec(ctx,
		`DELETE FROM notice_likes WHERE notice_id = $1 AND member = $2`,
		id, member,
	)
	if err != nil {
		return notice, err
	}

	if cmd.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO notice_likes (notice_id, member) VALUES ($1, $2)`,
			id, member,
		); err != nil {
			return notice, err
		}
	}

	notice, err = getNotice(ctx, tx, id)
	if err != nil {
		return notice, err
	}

	if err := tx.Commit(ctx); err != nil {
		return notice, err
	}

	return notice, nil
}

// AddComment appends a comment to a notice.
func (r *NoticeRepository) AddComment(ctx context.Context, noticeID uuid.UUID, body, author string) (models.Notice, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notice_comments (notice_id, body, author)
		 VALUES ($1, $2, $3)`,
		noticeID, body, author,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.Notice{}, ErrNotFound
		}
		return models.Notice{}, err
	}

	return getNotice(ctx, r.db, noticeID)
}

// Delete removes a notice; likes and comments go with it.
func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func getNotice(ctx context.Context, q querier, id uuid.UUID) (models.Notice, error) {
	notice, err := scanNotice(q.QueryRow(ctx,
		`SELECT `+noticeColumns+` FROM notices WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notice, ErrNotFound
		}
		return notice, err
	}

	notice.Likes = []string{}
	notice.Comments = []models.NoticeComment{}

	likeRows, err := q.Query(ctx,
		`SELECT member FROM notice_likes WHERE notice_id = $1 ORDER BY created_at`,
		id,
	)
	if err != nil {
		return notice, err
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var member string
		if err := likeRows.Scan(&member); err != nil {
			return notice, err
		}
		notice.Likes = append(notice.Likes, member)
	}
	if err := likeRows.Err(); err != nil {
		return notice, err
	}

	commentRows, err := q.Query(ctx,
		`SELECT id, notice_id, body, author, created_at
		 FROM notice_comments
		 WHERE notice_id = $1
		 ORDER BY created_at`,
		id,
	)
	if err != nil {
		return notice, err
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var comment models.NoticeComment
		if err := commentRows.Scan(&comment.ID, &comment.NoticeID, &comment.Text, &comment.Author, &comment.CreatedAt); err != nil {
			return notice, err
		}
		notice.Comments = append(notice.Comments, comment)
	}
	if err := commentRows.Err(); err != nil {
		return notice, err
	}

	return notice, nil
}
