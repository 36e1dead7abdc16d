package model

import "time"

// LiveSession is an active live streaming session. Sessions are stored in
// Redis with a TTL rather than in MySQL; an expired key is an ended stream.
type LiveSession struct {
	ID         string    `json:"id"`
	ArtistID   string    `json:"artistId"`
	ArtistName string    `json:"artistName"`
	Name       string    `json:"name"`
	Token      string    `json:"token"` // real-time audio provider token
	StartedAt  time.Time `json:"startedAt"`
}
