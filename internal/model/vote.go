package model

import "time"

// VoteEvent is an immutable fact: one voter endorsed one tool at one time.
// At most one active event exists per (slug, voter) pair; the repository
// enforces that by toggling repeats.
type VoteEvent struct {
	ID        int64     `json:"id"`
	ToolSlug  string    `json:"toolSlug"`
	VoterID   string    `json:"voterId"`
	CreatedAt time.Time `json:"createdAt"`
	IPHash    string    `json:"-"`
	UserAgent string    `json:"-"`
}

// VoteCounts is the per-tool reduction of the vote log. RecentVotes counts
// events within the trailing 24 hours of evaluation time.
type VoteCounts struct {
	TotalVotes  int `json:"totalVotes"`
	RecentVotes int `json:"recentVotes"`
}

// VoteRequest is the API request body for submitting (or toggling) a vote.
type VoteRequest struct {
	ToolSlug  string `json:"toolSlug"`
	VoterID   string `json:"voterId"`
	UserAgent string `json:"userAgent,omitempty"`
}

// VoteDeleteRequest is the API request body for removing a vote.
type VoteDeleteRequest struct {
	ToolSlug string `json:"toolSlug"`
	VoterID  string `json:"voterId"`
}

// VoteResponse is the API response after a vote toggle.
type VoteResponse struct {
	Success    bool   `json:"success"`
	Voted      bool   `json:"voted"`
	TotalVotes int    `json:"totalVotes"`
	IndexScore string `json:"indexScore,omitempty"`
}
