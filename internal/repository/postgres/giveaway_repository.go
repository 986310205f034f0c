package postgres

import (
	"context"
	"database/sql"
	"time"

	dg "github.com/nottherealepic/giveaway-bot/internal/domain/giveaway"
)

// GiveawayRepository persists giveaways, participants and winners.
type GiveawayRepository struct {
	db *sql.DB
}

func NewGiveawayRepository(db *sql.DB) *GiveawayRepository { return &GiveawayRepository{db: db} }

const giveawayColumns = `id, message_id, channel_id, guild_id, title, sponsor, prize, winners_count, host_id, end_time, ended, created_at`

// Create inserts a new open giveaway and returns the generated id.
func (r *GiveawayRepository) Create(ctx context.Context, g *dg.Giveaway) (int64, error) {
	const q = `
        INSERT INTO giveaways (message_id, channel_id, guild_id, title, sponsor, prize, winners_count, host_id, end_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		g.MessageID, g.ChannelID, g.GuildID, g.Title, g.Sponsor, g.Prize, g.WinnersCount, g.HostID, g.EndTime,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns a giveaway or nil when no row exists.
func (r *GiveawayRepository) GetByID(ctx context.Context, id int64) (*dg.Giveaway, error) {
	const q = `SELECT ` + giveawayColumns + ` FROM giveaways WHERE id=$1`
	var g dg.Giveaway
	row := r.db.QueryRowContext(ctx, q, id)
	if err := row.Scan(&g.ID, &g.MessageID, &g.ChannelID, &g.GuildID, &g.Title, &g.Sponsor, &g.Prize, &g.WinnersCount, &g.HostID, &g.EndTime, &g.Ended, &g.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// Join adds a participant; a duplicate pair is a no-op. Returns true when the
// row was actually inserted (first join).
func (r *GiveawayRepository) Join(ctx context.Context, giveawayID int64, userID string) (bool, error) {
	const q = `
        INSERT INTO participants (giveaway_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (giveaway_id, user_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, q, giveawayID, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Participants returns user ids of everyone who joined, in join order.
func (r *GiveawayRepository) Participants(ctx context.Context, giveawayID int64) ([]string, error) {
	const q = `SELECT user_id FROM participants WHERE giveaway_id=$1 ORDER BY joined_at ASC`
	rows, err := r.db.QueryContext(ctx, q, giveawayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// ListDue returns open giveaways whose deadline has passed, oldest first.
func (r *GiveawayRepository) ListDue(ctx context.Context, now time.Time) ([]dg.Giveaway, error) {
	const q = `SELECT ` + giveawayColumns + `
        FROM giveaways
        WHERE ended = FALSE AND end_time <= $1
        ORDER BY end_time ASC`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []dg.Giveaway
	for rows.Next() {
		var g dg.Giveaway
		if err := rows.Scan(&g.ID, &g.MessageID, &g.ChannelID, &g.GuildID, &g.Title, &g.Sponsor, &g.Prize, &g.WinnersCount, &g.HostID, &g.EndTime, &g.Ended, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Winners returns the recorded winner user ids in place order.
func (r *GiveawayRepository) Winners(ctx context.Context, giveawayID int64) ([]string, error) {
	const q = `SELECT user_id FROM winners WHERE giveaway_id=$1 ORDER BY place ASC`
	rows, err := r.db.QueryContext(ctx, q, giveawayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// CloseAndRecordWinners flips ended and records winners in one transaction.
// The giveaway row is locked so a racing close observes ended=true and
// returns false without touching the winner list. The flag is monotonic:
// nothing ever sets it back to false.
func (r *GiveawayRepository) CloseAndRecordWinners(ctx context.Context, id int64, winners []string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var ended bool
	if err = tx.QueryRowContext(ctx, `SELECT ended FROM giveaways WHERE id=$1 FOR UPDATE`, id).Scan(&ended); err != nil {
		return false, err
	}
	if ended {
		return false, tx.Commit()
	}

	const qWinner = `INSERT INTO winners (giveaway_id, place, user_id) VALUES ($1,$2,$3)`
	for place, uid := range winners {
		if _, err = tx.ExecContext(ctx, qWinner, id, place+1, uid); err != nil {
			return false, err
		}
	}

	if _, err = tx.ExecContext(ctx, `UPDATE giveaways SET ended=TRUE WHERE id=$1`, id); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
