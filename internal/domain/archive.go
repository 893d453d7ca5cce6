package domain

import "time"

// ArchivedAnalysis is one finished analysis stored in the archive collection.
type ArchivedAnalysis struct {
	ID          string    `json:"id" bson:"id"`
	PlayerBlack string    `json:"player_black" bson:"player_black"`
	PlayerWhite string    `json:"player_white" bson:"player_white"`
	Date        string    `json:"date" bson:"date"`
	Result      string    `json:"result" bson:"result"`
	SGF         string    `json:"sgf" bson:"sgf"` // canonical (tailless) record text
	Report      string    `json:"report" bson:"report"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
