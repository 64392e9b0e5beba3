package handler

type ContextKey string

var (
	SubCtxKey ContextKey = "sub"
	MyInfoCtx ContextKey = "myInfo"
	JobCtx    ContextKey = "job"
	ShiftCtx  ContextKey = "shift"
)
