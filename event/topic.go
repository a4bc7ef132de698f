package event

const (
	// TokenCreated トークンアーティファクトが保存された
	// 	Fields:
	// 		reference_id: string
	// 		kind: string
	TokenCreated = "token.created"
	// TokenConsumed トークンアーティファクトが消費された
	// 	Fields:
	// 		reference_id: string
	TokenConsumed = "token.consumed"
	// TokenRevoked トークンアーティファクトが失効した
	// 	Fields:
	// 		reference_id: string
	TokenRevoked = "token.revoked"
	// TokensRevokedByGrant グラント配下のトークンが一括失効した
	// 	Fields:
	// 		authorization_id: string
	// 		count: int64
	TokensRevokedByGrant = "token.revoked_by_grant"

	// AuthorizationCreated 認可グラントが保存された
	// 	Fields:
	// 		authorization_id: string
	AuthorizationCreated = "authorization.created"
	// AuthorizationRevoked 認可グラントが失効した
	// 	Fields:
	// 		authorization_id: string
	AuthorizationRevoked = "authorization.revoked"

	// ApplicationCreated クライアントアプリケーションが登録された
	// 	Fields:
	// 		app_id: string
	// 		client_id: string
	ApplicationCreated = "application.created"
	// ApplicationUpdated クライアントアプリケーションが更新された
	// 	Fields:
	// 		client_id: string
	ApplicationUpdated = "application.updated"
	// ApplicationDeleted クライアントアプリケーションが削除された
	// 	Fields:
	// 		client_id: string
	ApplicationDeleted = "application.deleted"

	// UserCreated ユーザーが追加された
	// 	Fields:
	// 		user_id: uuid.UUID
	UserCreated = "user.created"
)
