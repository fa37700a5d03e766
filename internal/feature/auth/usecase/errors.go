package usecase

import "topbrands_backend/internal/shared/apperror"

var (
	// ErrInvalidCredentials はユーザー名またはパスワードが一致しない場合に返されます。
	// ユーザー列挙を防ぐため、未登録・無効ユーザーでも同じエラーを返します。
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid username or password")

	// ErrUserNotFound はユーザーが存在しない場合に返されます。
	ErrUserNotFound = apperror.NotFound("user not found")

	// ErrDuplicateUser はユーザー名が既に使用されている場合に返されます。
	ErrDuplicateUser = apperror.Conflict("username already exists")

	// ErrSelfDeactivation は自分自身を無効化しようとした場合に返されます。
	ErrSelfDeactivation = apperror.BadRequest("you cannot deactivate your own account")

	// ErrWeakPassword はパスワードが短すぎる場合に返されます。
	ErrWeakPassword = apperror.Newf(apperror.KindBadRequest, "password must be at least %d characters long", minPasswordLength)

	// ErrSelfDeletion は自分自身を削除しようとした場合に返されます。
	ErrSelfDeletion = apperror.BadRequest("you cannot delete your own account")

	// ErrPasswordRequired はパスワード再設定で新しいパスワードが空の場合に返されます。
	ErrPasswordRequired = apperror.BadRequest("new_password is required")

	// ErrSuperuserRequired はスーパーユーザー以外がスーパーユーザー権限を付与しようとした場合に返されます。
	ErrSuperuserRequired = apperror.Forbidden("only superusers can grant superuser status")

	// ErrInactiveUser はトークンのユーザーが削除・無効化された、またはダッシュボード権限を失った場合に返されます。
	ErrInactiveUser = apperror.New(apperror.KindUnauthorized, "user is inactive or no longer has dashboard access")
)
