package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/api/about"

	SignupRoute      = "/api/signup"
	SigninRoute      = "/api/signin"
	AdminSigninRoute = "/api/admin/signin"

	BlogsRoute       = "/api/blogs"
	BlogByIDRoute    = BlogsRoute + "/{id}"
	MyBlogsRoute     = BlogsRoute + "/mine"
	BlogsByUserRoute = BlogsRoute + "/user/{userId}"

	ProfileRoute       = "/api/users/profile"
	ProfileImageRoute  = "/api/users/profile-image"
	PasswordRoute      = "/api/users/password"

	UploadRoute     = "/api/upload"
	UploadsPrefix   = "/uploads/"
	AdminAuditRoute = "/api/admin/audit"
)
