package constants

const (
	AppName        = "storefront"
	AppAuthService = "auth-service"

	AudienceStorefront = "storefront"
	RoleAdmin          = "admin"

	DefaultProductImage = "https://placehold.co/600x400?text=No+Image"
	CategoryAll         = "all"

	DefaultPage  = 1
	DefaultLimit = 12
)
