package handler

type ContextKey string

var (
	RolCtxKey    ContextKey = "rol"
	SubCtxKey    ContextKey = "sub"
	UserIDCtxKey ContextKey = "userID"
	MyInfoCtx    ContextKey = "myInfo"
)
