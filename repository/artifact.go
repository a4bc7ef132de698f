package repository

import (
	"time"

	"github.com/traPtitech/oidp/model"
)

// ArtifactRepository 種別別テーブル方式のアーティファクトリポジトリ
//
// アーティファクト種別ごとに専用テーブルを持つ最小スキーマを扱います。
// 各メソッドのkindには有効な種別を指定する必要があります。
type ArtifactRepository interface {
	// SaveArtifact アーティファクトを保存します
	//
	// 同じIDの行が既に存在する場合は内容を上書きし、存在しない場合は新規作成します。
	// 成功した場合、nilを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	SaveArtifact(kind model.ArtifactKind, artifact *model.Artifact) error
	// GetArtifactByID 指定したIDのアーティファクトを取得します
	//
	// 成功した場合、アーティファクトとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetArtifactByID(kind model.ArtifactKind, id string) (*model.Artifact, error)
	// GetArtifactByUID 指定したuidのアーティファクトを取得します
	//
	// 成功した場合、アーティファクトとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetArtifactByUID(kind model.ArtifactKind, uid string) (*model.Artifact, error)
	// GetArtifactByUserCode 指定したuser_codeのアーティファクトを取得します
	//
	// 成功した場合、アーティファクトとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetArtifactByUserCode(kind model.ArtifactKind, userCode string) (*model.Artifact, error)
	// ConsumeArtifact 指定したIDのアーティファクトを使用済みにします
	//
	// ペイロードに使用時刻を記録します。
	// 成功した場合、nilを返します。
	// 既に使用済みの場合も成功扱いで、最新の使用時刻を記録し直します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	ConsumeArtifact(kind model.ArtifactKind, id string, redeemedAt time.Time) error
	// DeleteArtifact 指定したIDのアーティファクトを物理削除します
	//
	// 成功した場合、nilを返します。存在しない場合も成功扱いです。
	// DBによるエラーを返すことがあります。
	DeleteArtifact(kind model.ArtifactKind, id string) error
	// DeleteArtifactsByGrantID 指定したグラントに紐づくアーティファクトを全て物理削除します
	//
	// 成功した場合、削除した件数とnilを返します。
	// DBによるエラーを返すことがあります。
	DeleteArtifactsByGrantID(kind model.ArtifactKind, grantID string) (int64, error)
	// DeleteExpiredArtifacts 有効期限を過ぎたアーティファクトを物理削除します
	//
	// 成功した場合、削除した件数とnilを返します。
	// DBによるエラーを返すことがあります。
	DeleteExpiredArtifacts(kind model.ArtifactKind, before time.Time) (int64, error)
}
