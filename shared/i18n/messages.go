package i18n

var messagesEN = map[string]string{
	"error.bad_request":            "Bad request",
	"error.unauthorized":           "Unauthorized",
	"error.forbidden":              "Forbidden",
	"error.not_found":              "Resource not found",
	"error.conflict":               "Resource already exists",
	"error.gone":                   "Resource is no longer available",
	"error.unsupported_media_type": "Unsupported media type",
	"error.too_early":              "Request was sent too early",
	"error.validation":             "Validation failed",
	"error.rate_limited":           "Too many requests, please try again later",
	"error.internal":               "Internal server error",
	"error.not_implemented":        "Not implemented",
	"error.bad_gateway":            "Bad gateway",
	"error.service_unavailable":    "Service unavailable",
	"error.gateway_timeout":        "The operation timed out",
	"error.insufficient_storage":   "Insufficient storage",

	"auth.invalid_credentials":           "Email or password is incorrect",
	"auth.email_already_exists":          "Email already exists",
	"auth.email_already_verified":        "Email already verified before",
	"auth.email_verify_token_invalid":    "Email verify token is invalid",
	"auth.forgot_password_token_invalid": "Forgot password token is invalid",
	"auth.token_expired":                 "Token expired at {0}",
	"auth.token_malformed":               "Token is invalid",
	"auth.token_not_yet_valid":           "Token is not valid before {0}",
	"auth.token_revoked":                 "Token has been revoked",
	"auth.access_token_required":         "Access token is required",
	"auth.token_user_mismatch":           "Token does not belong to this user",
	"auth.user_not_verified":             "User is not verified",
	"auth.user_banned":                   "User is banned",
	"auth.oauth_disabled":                "Sign-in with Google is not enabled",
	"auth.google_token_invalid":          "Google token is invalid",
	"auth.google_email_unverified":       "Google account email is not verified",
	"auth.old_password_incorrect":        "Old password is incorrect",

	"user.not_found":            "User not found",
	"follow.cannot_follow_self": "You cannot follow yourself",
	"media.unsupported_type":    "Content type {0} is not supported",
	"media.storage_unavailable": "Media storage is not available",

	"success.register":               "Register success",
	"success.login":                  "Login success",
	"success.logout":                 "Logout success",
	"success.verify_email":           "Email verify success",
	"success.resend_verify_email":    "Resend verify email success",
	"success.forgot_password":        "Check your email to reset password",
	"success.verify_forgot_password": "Verify forgot password success",
	"success.reset_password":         "Reset password success",
	"success.change_password":        "Change password success",
	"success.refresh_token":          "Refresh token success",
	"success.oauth":                  "Login with Google success",
	"success.get_me":                 "Get my profile success",
	"success.update_me":              "Update my profile success",
	"success.get_profile":            "Get profile success",
	"success.get_followers":          "Get followers success",
	"success.get_following":          "Get following success",
	"success.follow":                 "Follow success",
	"success.already_followed":       "Already followed",
	"success.unfollow":               "Unfollow success",
	"success.already_unfollowed":     "Already unfollowed",
	"success.upload_url":             "Upload URL created",
	"success.health":                 "OK",

	"validation.invalid_body":               "Request body is invalid",
	"validation.unique_username":            "{0} is already taken",
	"validation.strong_password":            "{0} must contain an uppercase letter, a lowercase letter, a number and a symbol",
	"validation.username":                   "{0} may only contain letters, numbers and underscores",
	"validation.suggestion.min":             "Use at least {0} characters",
	"validation.suggestion.max":             "Use at most {0} characters",
	"validation.suggestion.strong_password": "Mix upper and lower case letters, numbers and symbols",
	"validation.suggestion.eqfield":         "Make it match {0}",
	"validation.suggestion.email":           "Use an address like name@example.com",

	"mail.verify_email.subject":    "Verify your email",
	"mail.verify_email.body":       "<p>Welcome!</p><p>Please verify your email by opening the link below:</p><p>{0}</p>",
	"mail.forgot_password.subject": "Reset your password",
	"mail.forgot_password.body":    "<p>We received a request to reset your password.</p><p>{0}</p><p>If you did not request this, you can ignore this email.</p>",
}

var messagesVI = map[string]string{
	"error.bad_request":            "Yêu cầu không hợp lệ",
	"error.unauthorized":           "Chưa xác thực",
	"error.forbidden":              "Không có quyền truy cập",
	"error.not_found":              "Không tìm thấy tài nguyên",
	"error.conflict":               "Tài nguyên đã tồn tại",
	"error.gone":                   "Tài nguyên không còn khả dụng",
	"error.unsupported_media_type": "Định dạng không được hỗ trợ",
	"error.too_early":              "Yêu cầu được gửi quá sớm",
	"error.validation":             "Dữ liệu không hợp lệ",
	"error.rate_limited":           "Quá nhiều yêu cầu, vui lòng thử lại sau",
	"error.internal":               "Lỗi máy chủ",
	"error.not_implemented":        "Chưa được hỗ trợ",
	"error.bad_gateway":            "Lỗi cổng kết nối",
	"error.service_unavailable":    "Dịch vụ tạm thời không khả dụng",
	"error.gateway_timeout":        "Thao tác quá thời gian cho phép",
	"error.insufficient_storage":   "Không đủ dung lượng lưu trữ",

	"auth.invalid_credentials":           "Email hoặc mật khẩu không đúng",
	"auth.email_already_exists":          "Email đã tồn tại",
	"auth.email_already_verified":        "Email đã được xác thực trước đó",
	"auth.email_verify_token_invalid":    "Mã xác thực email không hợp lệ",
	"auth.forgot_password_token_invalid": "Mã đặt lại mật khẩu không hợp lệ",
	"auth.token_expired":                 "Mã đã hết hạn lúc {0}",
	"auth.token_malformed":               "Mã không hợp lệ",
	"auth.token_not_yet_valid":           "Mã chưa có hiệu lực trước {0}",
	"auth.token_revoked":                 "Mã đã bị thu hồi",
	"auth.access_token_required":         "Cần có access token",
	"auth.token_user_mismatch":           "Mã không thuộc về người dùng này",
	"auth.user_not_verified":             "Người dùng chưa xác thực",
	"auth.user_banned":                   "Người dùng đã bị khóa",
	"auth.oauth_disabled":                "Đăng nhập bằng Google chưa được bật",
	"auth.google_token_invalid":          "Mã Google không hợp lệ",
	"auth.google_email_unverified":       "Email tài khoản Google chưa được xác thực",
	"auth.old_password_incorrect":        "Mật khẩu cũ không đúng",

	"user.not_found":            "Không tìm thấy người dùng",
	"follow.cannot_follow_self": "Bạn không thể theo dõi chính mình",
	"media.unsupported_type":    "Định dạng {0} không được hỗ trợ",
	"media.storage_unavailable": "Kho lưu trữ tệp không khả dụng",

	"success.register":               "Đăng ký thành công",
	"success.login":                  "Đăng nhập thành công",
	"success.logout":                 "Đăng xuất thành công",
	"success.verify_email":           "Xác thực email thành công",
	"success.resend_verify_email":    "Gửi lại email xác thực thành công",
	"success.forgot_password":        "Kiểm tra email để đặt lại mật khẩu",
	"success.verify_forgot_password": "Xác thực mã đặt lại mật khẩu thành công",
	"success.reset_password":         "Đặt lại mật khẩu thành công",
	"success.change_password":        "Đổi mật khẩu thành công",
	"success.refresh_token":          "Làm mới token thành công",
	"success.oauth":                  "Đăng nhập bằng Google thành công",
	"success.get_me":                 "Lấy thông tin cá nhân thành công",
	"success.update_me":              "Cập nhật thông tin cá nhân thành công",
	"success.get_profile":            "Lấy thông tin người dùng thành công",
	"success.get_followers":          "Lấy danh sách người theo dõi thành công",
	"success.get_following":          "Lấy danh sách đang theo dõi thành công",
	"success.follow":                 "Theo dõi thành công",
	"success.already_followed":       "Đã theo dõi trước đó",
	"success.unfollow":               "Bỏ theo dõi thành công",
	"success.already_unfollowed":     "Đã bỏ theo dõi trước đó",
	"success.upload_url":             "Đã tạo đường dẫn tải lên",
	"success.health":                 "OK",

	"validation.invalid_body":               "Nội dung yêu cầu không hợp lệ",
	"validation.unique_username":            "{0} đã được sử dụng",
	"validation.strong_password":            "{0} phải có chữ hoa, chữ thường, chữ số và ký tự đặc biệt",
	"validation.username":                   "{0} chỉ được chứa chữ cái, chữ số và dấu gạch dưới",
	"validation.suggestion.min":             "Dùng ít nhất {0} ký tự",
	"validation.suggestion.max":             "Dùng tối đa {0} ký tự",
	"validation.suggestion.strong_password": "Kết hợp chữ hoa, chữ thường, chữ số và ký tự đặc biệt",
	"validation.suggestion.eqfield":         "Nhập trùng với {0}",
	"validation.suggestion.email":           "Dùng địa chỉ dạng ten@example.com",

	"mail.verify_email.subject":    "Xác thực email của bạn",
	"mail.verify_email.body":       "<p>Chào mừng bạn!</p><p>Vui lòng xác thực email bằng đường dẫn sau:</p><p>{0}</p>",
	"mail.forgot_password.subject": "Đặt lại mật khẩu",
	"mail.forgot_password.body":    "<p>Chúng tôi nhận được yêu cầu đặt lại mật khẩu của bạn.</p><p>{0}</p><p>Nếu bạn không yêu cầu, hãy bỏ qua email này.</p>",
}
