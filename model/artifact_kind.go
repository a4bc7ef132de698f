package model

import "fmt"

// ArtifactKind エンジンが扱うアーティファクト種別
//
// エンジンから渡される種別名ごとに保存先が静的に決まります。
// 未知の種別名はParseArtifactKindで弾かれ、推測でテーブルを選ぶことはありません。
type ArtifactKind string

const (
	// KindSession ブラウザセッション
	KindSession ArtifactKind = "Session"
	// KindAccessToken アクセストークン
	KindAccessToken ArtifactKind = "AccessToken"
	// KindAuthorizationCode 認可コード
	KindAuthorizationCode ArtifactKind = "AuthorizationCode"
	// KindRefreshToken リフレッシュトークン
	KindRefreshToken ArtifactKind = "RefreshToken"
	// KindDeviceCode デバイスコード
	KindDeviceCode ArtifactKind = "DeviceCode"
	// KindClientCredentials クライアントクレデンシャルグラント
	KindClientCredentials ArtifactKind = "ClientCredentials"
	// KindClient クライアントメタデータ
	KindClient ArtifactKind = "Client"
	// KindGrant 同意グラント
	KindGrant ArtifactKind = "Grant"
	// KindInteraction インタラクション
	KindInteraction ArtifactKind = "Interaction"
	// KindReplayDetection リプレイ検知マーカー
	KindReplayDetection ArtifactKind = "ReplayDetection"
	// KindBackchannelAuthenticationRequest バックチャンネル認証リクエスト
	KindBackchannelAuthenticationRequest ArtifactKind = "BackchannelAuthenticationRequest"
	// KindInitialAccessToken 初期登録アクセストークン
	KindInitialAccessToken ArtifactKind = "InitialAccessToken"
	// KindRegistrationAccessToken 登録アクセストークン
	KindRegistrationAccessToken ArtifactKind = "RegistrationAccessToken"
)

var artifactKinds = map[ArtifactKind]struct {
	tokenType string
	table     string
	uidLookup bool
}{
	KindSession:                          {"session", "oidc_sessions", true},
	KindAccessToken:                      {"access_token", "oidc_access_tokens", false},
	KindAuthorizationCode:                {"authorization_code", "oidc_authorization_codes", false},
	KindRefreshToken:                     {"refresh_token", "oidc_refresh_tokens", false},
	KindDeviceCode:                       {"device_code", "oidc_device_codes", false},
	KindClientCredentials:                {"client_credentials", "oidc_client_credentials", false},
	KindClient:                           {"client", "oidc_clients", false},
	KindGrant:                            {"grant", "oidc_grants", false},
	KindInteraction:                      {"interaction", "oidc_interactions", true},
	KindReplayDetection:                  {"replay_detection", "oidc_replay_detections", false},
	KindBackchannelAuthenticationRequest: {"backchannel_authentication_request", "oidc_backchannel_authentication_requests", false},
	KindInitialAccessToken:               {"initial_access_token", "oidc_initial_access_tokens", false},
	KindRegistrationAccessToken:          {"registration_access_token", "oidc_registration_access_tokens", false},
}

// ParseArtifactKind 種別名をArtifactKindに変換します 未知の名前の場合はfalseを返します
func ParseArtifactKind(name string) (ArtifactKind, bool) {
	k := ArtifactKind(name)
	_, ok := artifactKinds[k]
	return k, ok
}

// ArtifactKinds 全アーティファクト種別を返します
func ArtifactKinds() []ArtifactKind {
	kinds := make([]ArtifactKind, 0, len(artifactKinds))
	for k := range artifactKinds {
		kinds = append(kinds, k)
	}
	return kinds
}

// TokenType tokensテーブルのtypeカラムに保存する種別識別子を返します
func (k ArtifactKind) TokenType() string {
	return artifactKinds[k].tokenType
}

// TableName 単一テーブルレイアウトで使用するテーブル名を返します
func (k ArtifactKind) TableName() string {
	return artifactKinds[k].table
}

// UsesUIDLookup 主キー検索に失敗した際にuidでの検索へフォールバックする種別かどうか
func (k ArtifactKind) UsesUIDLookup() bool {
	return artifactKinds[k].uidLookup
}

// Validate 既知のアーティファクト種別かどうかを検証します
func (k ArtifactKind) Validate() error {
	if _, ok := artifactKinds[k]; !ok {
		return fmt.Errorf("unknown artifact kind: %s", string(k))
	}
	return nil
}
