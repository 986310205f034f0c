package giveaway

import "time"

// Giveaway is a time-boxed drawing with a prize, a deadline and a target
// winner count. A record is due when Ended is false and EndTime has passed.
type Giveaway struct {
	ID           int64     `json:"id"`
	MessageID    string    `json:"message_id"`
	ChannelID    string    `json:"channel_id"`
	GuildID      string    `json:"guild_id"`
	Title        string    `json:"title"`
	Sponsor      string    `json:"sponsor"`
	Prize        string    `json:"prize"`
	WinnersCount int       `json:"winners_count"`
	HostID       string    `json:"host_id"`
	EndTime      time.Time `json:"end_time"`
	Ended        bool      `json:"ended"`
	CreatedAt    time.Time `json:"created_at"`
}

// Due reports whether the giveaway is eligible for drawing.
func (g *Giveaway) Due(now time.Time) bool {
	return !g.Ended && !g.EndTime.After(now)
}

// Participant is a user who registered interest in a giveaway. The
// (GiveawayID, UserID) pair is unique; repeat joins are no-ops.
type Participant struct {
	GiveawayID int64     `json:"giveaway_id"`
	UserID     string    `json:"user_id"`
	JoinedAt   time.Time `json:"joined_at"`
}

// Winner is a drawn participant with a 1-based place.
type Winner struct {
	GiveawayID int64  `json:"giveaway_id"`
	Place      int    `json:"place"`
	UserID     string `json:"user_id"`
}

// JoinResult distinguishes a first join from a repeat. Both render as the
// same confirmation to the user.
type JoinResult int

const (
	Joined JoinResult = iota
	AlreadyJoined
)

// DrawOutcome describes the terminal state reached by a draw.
type DrawOutcome struct {
	Giveaway *Giveaway `json:"giveaway"`
	// Winners holds the drawn user ids in place order; empty when there
	// were not enough participants.
	Winners []string `json:"winners"`
	// Insufficient is set when fewer participants joined than winners
	// requested. The giveaway is still marked ended.
	Insufficient bool `json:"insufficient"`
	// AlreadyEnded is set when the giveaway had been closed before this
	// call; Winners then holds the previously recorded list.
	AlreadyEnded bool `json:"already_ended"`
}
