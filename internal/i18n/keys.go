// internal/i18n/keys.go
package i18n

// Translation keys used across handlers and middleware.
const (
	KeyAuthRequired      = "auth.required"
	KeyAuthInvalidToken  = "auth.invalid_token"
	KeyAuthTokenExpired  = "auth.token_expired"
	KeyAuthUnauthorized  = "auth.unauthorized"
	KeyAuthJoinSuccess   = "auth.join_success"
	KeyAuthLoginSuccess  = "auth.login_success"
	KeyAuthLogoutSuccess = "auth.logout_success"

	KeyAdminAccessDenied = "admin.access_denied"

	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	KeyUserNotFound       = "user"
	KeyUserDuplicateEmail = "user.duplicate_email"

	KeyCategoryNotFound = "category"
	KeyProductNotFound  = "product"
	KeyOptionNotFound   = "option"
	KeyOptionNoStock    = "option.out_of_stock"

	KeyCartEmpty = "cart.empty"

	KeyOrderNotFound  = "order"
	KeyOrderPlaced    = "order.placed"
	KeyOrderCancelled = "order.cancelled"

	KeyCommentNotFound = "comment"
	KeyPaymentNotFound = "payment"
)
