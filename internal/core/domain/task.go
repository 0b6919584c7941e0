package domain

// Task is the single domain entity: an identified, titled, completable unit
// of work. The ID is assigned by the repository at creation time and never
// changes afterwards.
type Task struct {
	ID        string
	Title     string
	Completed bool
}

// TaskPatch carries a partial update. Nil fields leave the stored value
// untouched.
type TaskPatch struct {
	Title     *string
	Completed *bool
}
