package models

// ProgramSession is one slot of an event's program. Time is HH:MM, Duration
// is in minutes.
type ProgramSession struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
	Location    string `json:"location,omitempty"`
	Speaker     string `json:"speaker,omitempty"`
	Description string `json:"description,omitempty"`
}
