package domain

// EnforceRequest lives here so middleware and rbac can share it without
// importing each other.
type EnforceRequest struct {
	ActorID  string `json:"actor_id"`
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}
