package repository

// Repository 全リポジトリのインターフェイス
type Repository interface {
	// Sync スキーママイグレーションを実行し、リポジトリを同期します
	//
	// スキーマが初期化された場合、trueを返します。
	// DBによるエラーを返すことがあります。
	Sync() (init bool, err error)
	ApplicationRepository
	AuthorizationRepository
	TokenRepository
	ArtifactRepository
	UserRepository
	ScopeRepository
}
