package photos

import "time"

// Photo is one progress photo record. The binary itself lives in object
// storage; ObjectKey points to it, and the display URI is resolved on demand.
type Photo struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ObjectKey string    `json:"objectKey"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}
