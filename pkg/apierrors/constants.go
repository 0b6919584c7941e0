package apierrors

const (
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgDuplicateTitle     = "duplicateTitle"
	MsgEmptyTitle         = "emptyTitle"
	MsgTitleTooLong       = "titleTooLong"
	MsgTitleInvalidChars  = "titleInvalidChars"
	MsgFailListTasks      = "failListTasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailToggleTask     = "failToggleTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgTaskDeleted        = "taskDeleted"
)
