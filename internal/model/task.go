package model

// Task is the domain model for a to-do entry.
// IDs are assigned by the store and never reused within a process.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Stats counts done and pending tasks for headers and summaries.
func Stats(tasks []Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
